package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "wrong_type":
			return "型が不正です"
		case "missing_value":
			return "必須フィールドが不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "union_match":
			return "どのユニオン型にも一致しません"
		case "union_ambiguous":
			return "複数のユニオン型に一致します"
		case "unresolved_reference":
			return "前方参照を解決できません"
		case "transform_failed":
			return "変換に失敗しました"
		}
	default: // "en"
		switch code {
		case "wrong_type":
			return "wrong value type"
		case "missing_value":
			return "required field missing"
		case "unknown_key":
			return "unknown key"
		case "union_match":
			return "no union member matched"
		case "union_ambiguous":
			return "more than one union member matched"
		case "unresolved_reference":
			return "unresolved forward reference"
		case "transform_failed":
			return "transform failed"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T translates an issue code through the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
