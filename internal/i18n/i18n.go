// internal/i18n/i18n.go
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"
)

//go:embed locales/*.json
var localeFS embed.FS

type I18n struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	defaultLang  string
}

var instance *I18n
var once sync.Once

// Initialize loads the embedded locales. Only the first call has any effect.
func Initialize(defaultLang string) error {
	var err error
	once.Do(func() {
		if defaultLang == "" {
			defaultLang = "en"
		}
		instance = &I18n{
			translations: make(map[string]map[string]string),
			defaultLang:  defaultLang,
		}
		err = instance.LoadTranslations()
	})
	return err
}

func (i *I18n) LoadTranslations() error {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return fmt.Errorf("failed to list locales: %w", err)
	}

	for _, entry := range entries {
		file := entry.Name()
		lang := strings.TrimSuffix(file, ".json")

		data, err := localeFS.ReadFile(path.Join("locales", file))
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", file, err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return fmt.Errorf("failed to unmarshal locale file %s: %w", file, err)
		}

		i.mu.Lock()
		i.translations[lang] = translations
		i.mu.Unlock()
	}

	return nil
}

func (i *I18n) lookup(lang, key string) (string, bool) {
	if translations, exists := i.translations[lang]; exists {
		if text, exists := translations[key]; exists {
			return text, true
		}
	}
	return "", false
}

func (i *I18n) T(lang, key string, args ...interface{}) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	text, ok := i.lookup(lang, key)
	if !ok {
		// Fallback to default language
		text, ok = i.lookup(i.defaultLang, key)
	}
	if !ok {
		return key
	}

	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

// get returns the shared instance, loading the embedded locales with the
// "en" default if Initialize has not run yet.
func get() *I18n {
	Initialize("")
	return instance
}

// Global functions
func T(lang, key string, args ...interface{}) string {
	return get().T(lang, key, args...)
}

func IsSupported(lang string) bool {
	i := get()
	i.mu.RLock()
	defer i.mu.RUnlock()

	_, ok := i.translations[lang]
	return ok
}
