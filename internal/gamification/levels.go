package gamification

// levelThresholds[i] хранит суммарный XP, необходимый для уровня i+1.
// Кривая растет монотонно; после последнего порога уровень не повышается.
var levelThresholds = []int64{0, 100, 250, 500, 900, 1400, 2000, 2800, 3800, 5000}

var MaxLevel = len(levelThresholds)

// LevelForXP возвращает уровень для накопленного XP.
func LevelForXP(xp int64) int {
	level := 1
	for i, threshold := range levelThresholds {
		if xp >= threshold {
			level = i + 1
		}
	}

	return level
}

// XPForLevel возвращает суммарный XP, необходимый для уровня.
func XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}

	return levelThresholds[level-1]
}

// XPToNextLevel возвращает, сколько XP не хватает до следующего уровня.
// Для максимального уровня возвращает 0.
func XPToNextLevel(xp int64) int64 {
	level := LevelForXP(xp)
	if level >= MaxLevel {
		return 0
	}

	return levelThresholds[level] - xp
}
