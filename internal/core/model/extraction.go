package model

// ExtractedIntent holds query substrings attributed to spoken audio or on-screen text.
// An empty field means "no constraint", never a literal empty-string filter.
type ExtractedIntent struct {
	VoiceText  string `json:"voice_text"`
	ScreenText string `json:"screen_text"`
}

func (i ExtractedIntent) IsEmpty() bool {
	return i.VoiceText == "" && i.ScreenText == ""
}

// Extraction is the tagged outcome of intent extraction: Degraded means the LLM
// output could not be parsed and Intent was replaced by empty hints.
type Extraction struct {
	Intent   ExtractedIntent
	Degraded bool
}
