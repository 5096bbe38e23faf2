package shell

import "strings"

// defaultLabelKey is the label used when no locale matches.
const defaultLabelKey = "default"

// ResolveLocalizedValue picks the label for locale from values. A region
// locale such as es-MX tries es-mx, then es, then the default entry, and
// finally returns fallback.
func ResolveLocalizedValue(values map[string]string, locale, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	labels := normalizeLocaleMap(values)
	for _, key := range localeCandidates(locale) {
		if label, ok := labels[key]; ok {
			return label
		}
	}
	return fallback
}

// normalizeLocaleMap lower-cases keys, turns underscores into dashes and
// drops empty labels.
func normalizeLocaleMap(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for key, label := range values {
		if key = normalizeLocale(key); key != "" && label != "" {
			out[key] = label
		}
	}
	return out
}

func localeCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return []string{defaultLabelKey}
	}
	base, _, regional := strings.Cut(locale, "-")
	if regional && base != "" {
		return []string{locale, base, defaultLabelKey}
	}
	return []string{locale, defaultLabelKey}
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(locale)), "_", "-")
}
