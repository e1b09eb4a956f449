package ocr

// parseResponse mirrors the OCR.space /parse/image response
type parseResponse struct {
	ParsedResults         []parsedResult `json:"ParsedResults"`
	OCRExitCode           any            `json:"OCRExitCode"`
	IsErroredOnProcessing bool           `json:"IsErroredOnProcessing"`
	ErrorMessage          any            `json:"ErrorMessage"`
}

type parsedResult struct {
	TextOverlay       *textOverlay `json:"TextOverlay"`
	FileParseExitCode int          `json:"FileParseExitCode"`
	ParsedText        string       `json:"ParsedText"`
	ErrorMessage      string       `json:"ErrorMessage"`
}

type textOverlay struct {
	Lines      []overlayLine `json:"Lines"`
	HasOverlay bool          `json:"HasOverlay"`
}

type overlayLine struct {
	Words     []overlayWord `json:"Words"`
	MaxHeight float64       `json:"MaxHeight"`
	MinTop    float64       `json:"MinTop"`
}

type overlayWord struct {
	WordText string  `json:"WordText"`
	Left     float64 `json:"Left"`
	Top      float64 `json:"Top"`
	Height   float64 `json:"Height"`
	Width    float64 `json:"Width"`
}

// exitCodeSuccess is FileParseExitCode for a parsed file
const exitCodeSuccess = 1
