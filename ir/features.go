package ir

// FeaturesKind tells where layout rules come from.
type FeaturesKind uint8

// Sources of layout rules.
const (
	FeaturesEmpty  FeaturesKind = iota // no layout rules at all
	FeaturesMemory                     // rule text held in memory
	FeaturesFile                       // rule text in a file
)

// Features holds the layout rules (in feature-file syntax) of a typeface.
type Features struct {
	Kind FeaturesKind
	Text string // rule text, for FeaturesMemory
	Path string // file path, for FeaturesFile
}

// EmptyFeatures is used for fonts without layout rules.
func EmptyFeatures() Features {
	return Features{Kind: FeaturesEmpty}
}

// MemoryFeatures holds layout rule text in memory.
func MemoryFeatures(text string) Features {
	return Features{Kind: FeaturesMemory, Text: text}
}

// FileFeatures refers to a file of layout rules.
func FileFeatures(path string) Features {
	return Features{Kind: FeaturesFile, Path: path}
}
