package state

// Status is the lifecycle status of a result slot
type Status string

const (
	StatusIdle    Status = ""
	StatusLoading Status = "loading"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// OCR view modes
const (
	ModeImage = "image" // translated lines overlaid on the source image
	ModeText  = "text"  // plain translated text
)

// DefaultZoomLevel is applied to every freshly completed OCR result
const DefaultZoomLevel = 1.0

// Line is one recognized text line with its position in the source image
type Line struct {
	Height int    `json:"height"`
	Top    int    `json:"top"`
	Left   int    `json:"left"`
	Text   string `json:"text"`
}

// OcrResult is the OCR pipeline slot. OutputLines[i] always carries the
// geometry of InputLines[i].
type OcrResult struct {
	Status       Status  `json:"status"`
	InputLang    string  `json:"inputLang,omitempty"`
	OutputLang   string  `json:"outputLang,omitempty"`
	InputText    string  `json:"inputText,omitempty"`
	InputLines   []Line  `json:"inputLines,omitempty"`
	OutputText   string  `json:"outputText,omitempty"`
	OutputLines  []Line  `json:"outputLines,omitempty"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	ZoomLevel    float64 `json:"zoomLevel,omitempty"`
	Mode         string  `json:"mode,omitempty"`
	PhrasebookID string  `json:"phrasebookId,omitempty"`
}

// Clone returns a deep copy
func (r *OcrResult) Clone() *OcrResult {
	if r == nil {
		return nil
	}
	c := *r
	c.InputLines = append([]Line(nil), r.InputLines...)
	c.OutputLines = append([]Line(nil), r.OutputLines...)
	return &c
}

// SavedID returns the phrasebook id, empty when not saved
func (r *OcrResult) SavedID() string {
	return r.PhrasebookID
}

// WithSavedID returns a copy carrying the given phrasebook id
func (r *OcrResult) WithSavedID(id string) *OcrResult {
	c := r.Clone()
	c.PhrasebookID = id
	return c
}

// TextResult is the plain text translation slot
type TextResult struct {
	Status       Status `json:"status"`
	InputLang    string `json:"inputLang,omitempty"`
	OutputLang   string `json:"outputLang,omitempty"`
	InputText    string `json:"inputText,omitempty"`
	OutputText   string `json:"outputText,omitempty"`
	PhrasebookID string `json:"phrasebookId,omitempty"`
}

// Clone returns a copy
func (r *TextResult) Clone() *TextResult {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

// SavedID returns the phrasebook id, empty when not saved
func (r *TextResult) SavedID() string {
	return r.PhrasebookID
}

// WithSavedID returns a copy carrying the given phrasebook id
func (r *TextResult) WithSavedID(id string) *TextResult {
	c := r.Clone()
	c.PhrasebookID = id
	return c
}

// Settings holds the user's language selection
type Settings struct {
	InputLang  string
	OutputLang string
	Realtime   bool
}
