package audio

// ScaleDegrees is the number of notes in every level scale
const ScaleDegrees = 10

// Scale maps scale-degree index to frequency in Hz
type Scale [ScaleDegrees]float64

// levelScales cycle with level number, all rooted on middle C
var levelScales = [...]Scale{
	// Major
	{261.63, 293.66, 329.63, 349.23, 392.00, 440.00, 493.88, 523.25, 587.33, 659.25},
	// Natural minor
	{261.63, 293.66, 311.13, 349.23, 392.00, 415.30, 466.16, 523.25, 587.33, 622.25},
	// Phrygian dominant
	{261.63, 277.18, 329.63, 349.23, 392.00, 415.30, 493.88, 523.25, 554.37, 659.25},
	// Blues flavoured
	{261.63, 311.13, 349.23, 370.00, 392.00, 466.16, 493.88, 523.25, 622.25, 698.46},
	// Chromatic cluster
	{261.63, 277.18, 293.66, 311.13, 329.63, 349.23, 370.00, 392.00, 415.30, 440.00},
}

// ScaleCount is the period of the level-to-scale cycle
const ScaleCount = len(levelScales)

var scaleNames = [ScaleCount]string{"major", "minor", "phrygian-dominant", "blues", "chromatic"}

// ScaleForLevel returns the scale for a 1-based level, cycling every ScaleCount levels
func ScaleForLevel(level int) Scale {
	return levelScales[scaleIndex(level)]
}

// ScaleName returns a short name for the scale a level plays in
func ScaleName(level int) string {
	return scaleNames[scaleIndex(level)]
}

func scaleIndex(level int) int {
	idx := (level - 1) % ScaleCount
	if idx < 0 {
		idx += ScaleCount
	}
	return idx
}
