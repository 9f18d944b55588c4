package media

// Resolved hasil resolve satu link: caption + audio URL
type Resolved struct {
	Caption  string `json:"caption"`
	AudioURL string `json:"audio_url"`
}

// Language enum untuk bahasa yang diucapkan di video
type Language string

const (
	LanguageHindi   Language = "Hindi"
	LanguageEnglish Language = "English"
)

// Locale maps the spoken language to a speech-recognition locale code.
func (l Language) Locale() string {
	if l == LanguageHindi {
		return "hi-IN"
	}
	return "en-US"
}
