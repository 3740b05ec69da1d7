package services

// tesseractLangs maps API language codes to Tesseract traineddata names.
// A code is supported if and only if it appears here; every supported code
// also has a synthesis voice (see voiceFor, which falls back to English).
var tesseractLangs = map[string]string{
	"en": "eng",
	"hi": "hin",
	"bn": "ben",
	"te": "tel",
	"ta": "tam",
	"mr": "mar",
}

// synthesisVoices maps API language codes to speech-synthesis voice codes.
// Codes missing from this table fall back to defaultVoice rather than
// failing, so the pipeline always produces audio when text exists.
var synthesisVoices = map[string]string{
	"en": "en",
	"hi": "hi",
	"bn": "bn",
	"te": "te",
	"ta": "ta",
	"mr": "mr",
}

const defaultVoice = "en"

// IsSupportedLanguage reports whether code is in the supported OCR set.
func IsSupportedLanguage(code string) bool {
	_, ok := tesseractLangs[code]
	return ok
}

// voiceFor returns the synthesis voice for code, defaulting to English.
func voiceFor(code string) string {
	if v, ok := synthesisVoices[code]; ok {
		return v
	}
	return defaultVoice
}
