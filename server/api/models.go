package api

// InfoModel is the response body of GET /info.
type InfoModel struct {
	Version struct {
		Server string `json:"server"`
		RG2NFA string `json:"rg2nfa"`
	} `json:"version"`
}

// ConversionRequest is the request body of POST /conversions.
type ConversionRequest struct {
	Name    string `json:"name"`
	Grammar string `json:"grammar"`
}

// ConversionModel is a stored conversion as it is sent to clients.
type ConversionModel struct {
	URI       string     `json:"uri"`
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Grammar   string     `json:"grammar"`
	Linearity string     `json:"linearity"`
	Table     TableModel `json:"table"`
	Dropped   []string   `json:"dropped,omitempty"`
	Created   string     `json:"created"`
}

// TableModel is the transition table of a conversion. Cells is indexed by
// row (symbol) and then by column (state).
type TableModel struct {
	Orientation string       `json:"orientation"`
	States      []string     `json:"states"`
	Accepting   []string     `json:"accepting"`
	Symbols     []string     `json:"symbols"`
	Cells       [][][]string `json:"cells"`
}
