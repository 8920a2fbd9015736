package i18n

import "strings"

const defaultLang = "ko"

// DetectLanguage picks a supported language from an Accept-Language header.
// Korean is the default; English is honored when explicitly preferred.
func DetectLanguage(acceptLang string) string {
	s := strings.ToLower(strings.TrimSpace(acceptLang))
	if s == "" {
		return defaultLang
	}
	first := s
	if idx := strings.IndexAny(first, ",;"); idx >= 0 {
		first = first[:idx]
	}
	if strings.HasPrefix(first, "en") {
		return "en"
	}
	return defaultLang
}

var messages = map[string]map[string]string{
	"ko": {
		"required":             "필수 입력 항목입니다.",
		"too_short":            "입력값이 너무 짧습니다.",
		"invalid_phone":        "올바른 전화번호를 입력해주세요.",
		"invalid_email":        "올바른 이메일 주소를 입력해주세요.",
		"invalid_service_type": "지원하지 않는 서비스 유형입니다.",
		"out_of_range":         "허용 범위를 벗어났습니다.",
		"must_be_positive":     "0보다 큰 값이어야 합니다.",
		"lead_not_found":       "리드를 찾을 수 없습니다.",
		"invalid_credentials":  "이메일 또는 비밀번호가 올바르지 않습니다.",
	},
	"en": {
		"required":             "Required",
		"too_short":            "Too short",
		"invalid_phone":        "Invalid phone number",
		"invalid_email":        "Invalid email address",
		"invalid_service_type": "Unsupported service type",
		"out_of_range":         "Out of range",
		"must_be_positive":     "Must be positive",
		"lead_not_found":       "Lead not found",
		"invalid_credentials":  "Invalid credentials",
	},
}

// T translates a message code. Unknown languages fall back to Korean;
// unknown codes fall back to the code itself.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[defaultLang][code]; ok {
		return s
	}
	return code
}

// TranslateAll maps every violation code in fields to its message.
func TranslateAll(lang string, fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for f, code := range fields {
		out[f] = T(lang, code)
	}
	return out
}
