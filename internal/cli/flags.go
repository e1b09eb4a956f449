package cli

// Flags holds all command-line flag values
type Flags struct {
	// Global flags
	CfgFile    string
	InputLang  string
	OutputLang string
	Provider   string
	LogLevel   string

	// ocr flags
	Capture   bool
	BatchFile string
	Mode      string
	Zoom      float64

	// translate flags
	Interactive bool
	Realtime    bool

	// Shared by ocr and translate
	Save bool

	// phrasebook export flags
	ExportFormat string
	ExportOutput string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		InputLang:    "en",
		OutputLang:   "de",
		Provider:     "openai",
		LogLevel:     "warn",
		Mode:         "image",
		Zoom:         1.0,
		ExportFormat: "markdown",
	}
}
