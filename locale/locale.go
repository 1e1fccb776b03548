// Package locale holds the display strings used when rendering measurements.
//
// Each supported language has a flat key→string table and a unit table.
// Lookups never fail: an unknown language resolves to English and an unknown
// key is echoed back unchanged.
package locale

import (
	"sync"

	"golang.org/x/text/language"
)

const (
	English = "en"
	Russian = "ru"

	// Default is used for any tag that does not match a supported language.
	Default = English
)

type table struct {
	strings map[string]string
	units   map[string]string
}

var tables = map[string]table{
	English: {
		strings: map[string]string{
			"test":            "Test",
			"result":          "Result",
			"time":            "Time",
			"memory_used":     "Memory used",
			"peak_memory":     "Peak memory",
			"max_time":        "Max time",
			"timeline":        "Execution Timeline",
			"no_measurements": "No measurements to display",
			"iterations":      "Iterations",
			"average_time":    "Average time",
			"min_time":        "Min time",
			"max_time_stat":   "Max time",
			"average_memory":  "Average memory",
			"min_memory":      "Min memory",
			"max_memory":      "Max memory",
		},
		units: map[string]string{
			"μs":    "μs",
			"ms":    "ms",
			"sec":   "sec",
			"bytes": "bytes",
			"kb":    "KB",
			"mb":    "MB",
			"gb":    "GB",
		},
	},
	Russian: {
		strings: map[string]string{
			"test":            "Тест",
			"result":          "Результат",
			"time":            "Время",
			"memory_used":     "Использовано памяти",
			"peak_memory":     "Пиковая память",
			"max_time":        "Макс. время",
			"timeline":        "Временная шкала выполнения",
			"no_measurements": "Нет данных для отображения",
			"iterations":      "Итерации",
			"average_time":    "Среднее время",
			"min_time":        "Мин. время",
			"max_time_stat":   "Макс. время",
			"average_memory":  "Средняя память",
			"min_memory":      "Мин. память",
			"max_memory":      "Макс. память",
		},
		units: map[string]string{
			"μs":    "мкс",
			"ms":    "мс",
			"sec":   "сек",
			"bytes": "байт",
			"kb":    "Кб",
			"mb":    "Мб",
			"gb":    "Гб",
		},
	},
}

// Order matters: the first tag is the matcher's fallback.
var (
	supportedTags = []language.Tag{language.English, language.Russian}
	supportedIDs  = []string{English, Russian}
	matcher       = language.NewMatcher(supportedTags)
)

// Supported returns the built-in language tags, default first.
func Supported() []string {
	out := make([]string, len(supportedIDs))
	copy(out, supportedIDs)
	return out
}

// Resolve maps an arbitrary BCP 47 tag onto a supported language.
// Regional variants resolve to their base language ("ru-RU" → "ru");
// anything else resolves to Default.
func Resolve(tag string) string {
	if tag == "" {
		return Default
	}
	if _, ok := tables[tag]; ok {
		return tag
	}
	t, err := language.Parse(tag)
	if err != nil {
		return Default
	}
	_, idx, conf := matcher.Match(t)
	if conf < language.High {
		return Default
	}
	return supportedIDs[idx]
}

// Lookup returns the string for key in lang. The boolean reports whether the
// key exists; lang is resolved first, so an unknown language reads English.
func Lookup(lang, key string) (string, bool) {
	s, ok := tables[Resolve(lang)].strings[key]
	return s, ok
}

// LookupUnit is Lookup for unit suffixes.
func LookupUnit(lang, unit string) (string, bool) {
	s, ok := tables[Resolve(lang)].units[unit]
	return s, ok
}

// Translate returns the string for key in lang, or key itself when missing.
func Translate(lang, key string) string {
	if s, ok := Lookup(lang, key); ok {
		return s
	}
	return key
}

// TranslateUnit returns the unit suffix for lang, or unit itself when missing.
func TranslateUnit(lang, unit string) string {
	if s, ok := LookupUnit(lang, unit); ok {
		return s
	}
	return unit
}

var (
	mu      sync.RWMutex
	current = Default
)

// SetLanguage sets the process-wide language. Unsupported tags select
// Default; the call never fails.
func SetLanguage(tag string) {
	resolved := Resolve(tag)
	mu.Lock()
	current = resolved
	mu.Unlock()
}

// Current returns the process-wide language.
func Current() string {
	mu.RLock()
	defer mu.RUnlock()
	return current
}
