package services

import "strings"

// adviceEntry pairs a keyword with its canned reply. Order is significant:
// the first entry whose keyword appears in the message wins.
type adviceEntry struct {
	keyword string
	reply   string
}

// adviceTable holds one language's ordered entries plus its fallback replies.
type adviceTable struct {
	entries      []adviceEntry
	defaultReply string
	apologyReply string
}

const chatFallbackLang = "en"

var adviceTables = map[string]*adviceTable{
	"en": {
		entries: []adviceEntry{
			{"fever", "For fever: Rest well, drink fluids, take paracetamol. Visit doctor if fever >102°F or persists 3+ days."},
			{"cough", "For cough: Drink warm water, avoid cold drinks, inhale steam. Visit doctor if persistent."},
			{"headache", "For headache: Rest in dark room, drink water, avoid screens. Visit doctor if severe."},
			{"cold", "For cold: Warm fluids, rest, nasal saline drops. Usually improves in 7-10 days."},
			{"stomach", "For stomach issues: Drink ORS, eat bananas/rice, avoid spicy food."},
			{"skin", "Keep area clean + dry. Avoid scratching. Use mild soap. Consult dermatologist if severe."},
			{"pain", "Rest the area, use ice pack, take prescribed pain medicine if needed."},
		},
		defaultReply: "I can help with fever, cough, headache, cold, skin or stomach issues. Describe your symptom.",
		apologyReply: "Sorry, I couldn't understand. Try again.",
	},
	"hi": {
		entries: []adviceEntry{
			{"fever", "बुखार: आराम करें, तरल पदार्थ पिएं, पेरासिटामोल लें। 3 दिन से ज़्यादा बुखार हो तो डॉक्टर को दिखाएं।"},
			{"cough", "खांसी: शहद वाला गर्म पानी पिएं, भाप लें। यदि एक सप्ताह से अधिक हो तो डॉक्टर को दिखाएं।"},
			{"headache", "सिरदर्द: अंधेरे कमरे में आराम करें, पानी पिएं, स्क्रीन टाइम कम करें।"},
			{"cold", "जुकाम: आराम करें, गर्म तरल लें, सलाइन ड्रॉप्स use करें।"},
			{"stomach", "पेट दर्द: ORS पिएँ, हल्का भोजन करें, मसालेदार भोजन से बचें।"},
			{"skin", "त्वचा: साफ रखें, खुजलाएं नहीं, हल्के साबुन का उपयोग करें।"},
			{"pain", "दर्द: आराम करें, बर्फ की सिकाई करें।"},
		},
		defaultReply: "मैं बुखार, खांसी, सिरदर्द, जुकाम, पेट और त्वचा समस्याओं में मदद कर सकता हूँ।",
		apologyReply: "Sorry, I couldn't understand. Try again.",
	},
}

// Chatbot answers free-text health questions from a static keyword table.
// It is total: any input produces a reply, never an error.
type Chatbot struct{}

func NewChatbot() *Chatbot {
	return &Chatbot{}
}

// Respond returns the reply for the first keyword found in message.
// Languages without a table fall back to English; messages matching no
// keyword get the language's default reply.
func (b *Chatbot) Respond(message, lang string) string {
	table, ok := adviceTables[lang]
	if !ok {
		table = adviceTables[chatFallbackLang]
	}

	lower := strings.ToLower(message)
	for _, entry := range table.entries {
		if strings.Contains(lower, entry.keyword) {
			return entry.reply
		}
	}
	return table.defaultReply
}

// Apology returns the reply used when a chat request is malformed.
func (b *Chatbot) Apology(lang string) string {
	table, ok := adviceTables[lang]
	if !ok {
		table = adviceTables[chatFallbackLang]
	}
	return table.apologyReply
}
