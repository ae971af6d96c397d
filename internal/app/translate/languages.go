/*
Package translate provides the translation adapter used for per-recipient message translation.

This file defines the table of language codes the adapter accepts as translation
targets, mirroring the language list of the upstream translation service.
*/
package translate

// supportedLanguages maps the ISO-style short codes accepted as translation
// targets to their English names.
var supportedLanguages = map[string]string{
	"af":    "afrikaans",
	"sq":    "albanian",
	"am":    "amharic",
	"ar":    "arabic",
	"hy":    "armenian",
	"az":    "azerbaijani",
	"eu":    "basque",
	"be":    "belarusian",
	"bn":    "bengali",
	"bs":    "bosnian",
	"bg":    "bulgarian",
	"ca":    "catalan",
	"zh-cn": "chinese (simplified)",
	"zh-tw": "chinese (traditional)",
	"hr":    "croatian",
	"cs":    "czech",
	"da":    "danish",
	"nl":    "dutch",
	"en":    "english",
	"eo":    "esperanto",
	"et":    "estonian",
	"fi":    "finnish",
	"fr":    "french",
	"gl":    "galician",
	"ka":    "georgian",
	"de":    "german",
	"el":    "greek",
	"gu":    "gujarati",
	"ht":    "haitian creole",
	"ha":    "hausa",
	"iw":    "hebrew",
	"hi":    "hindi",
	"hu":    "hungarian",
	"is":    "icelandic",
	"id":    "indonesian",
	"ga":    "irish",
	"it":    "italian",
	"ja":    "japanese",
	"kn":    "kannada",
	"kk":    "kazakh",
	"km":    "khmer",
	"ko":    "korean",
	"ku":    "kurdish",
	"lo":    "lao",
	"lv":    "latvian",
	"lt":    "lithuanian",
	"mk":    "macedonian",
	"ms":    "malay",
	"ml":    "malayalam",
	"mt":    "maltese",
	"mr":    "marathi",
	"mn":    "mongolian",
	"ne":    "nepali",
	"no":    "norwegian",
	"fa":    "persian",
	"pl":    "polish",
	"pt":    "portuguese",
	"pa":    "punjabi",
	"ro":    "romanian",
	"ru":    "russian",
	"sr":    "serbian",
	"sk":    "slovak",
	"sl":    "slovenian",
	"so":    "somali",
	"es":    "spanish",
	"sw":    "swahili",
	"sv":    "swedish",
	"ta":    "tamil",
	"te":    "telugu",
	"th":    "thai",
	"tr":    "turkish",
	"uk":    "ukrainian",
	"ur":    "urdu",
	"uz":    "uzbek",
	"vi":    "vietnamese",
	"cy":    "welsh",
	"yi":    "yiddish",
	"zu":    "zulu",
}

// IsSupported reports whether code is a recognized language code.
func IsSupported(code string) bool {
	_, ok := supportedLanguages[code]
	return ok
}
