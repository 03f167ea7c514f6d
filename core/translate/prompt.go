// Package translate builds translation instructions for a chat model.
package translate

import (
	"maps"
	"strings"
	"text/template"

	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/contentlens/core/config"
)

// Builder renders translation prompts from language and style tables.
type Builder struct {
	languages     map[string]string
	styles        map[string]map[string]string
	defaultStyle  string
	fallbackStyle string
}

// NewBuilder copies the language and style tables it needs.
func NewBuilder(t config.Tables) *Builder {
	styles := make(map[string]map[string]string, len(t.Styles))
	for lang, phrases := range t.Styles {
		styles[lang] = maps.Clone(phrases)
	}
	return &Builder{
		languages:     maps.Clone(t.Languages),
		styles:        styles,
		defaultStyle:  t.DefaultStyle,
		fallbackStyle: t.FallbackStyle,
	}
}

// LanguageName returns the display name of a language code, or the code
// itself when it is unknown.
func (b *Builder) LanguageName(code string) string {
	if name, ok := b.languages[code]; ok {
		return name
	}
	return code
}

// StylePhrase returns the instruction for style in targetLang. An empty style
// means the default style; unknown combinations use the fallback phrase.
func (b *Builder) StylePhrase(targetLang, style string) string {
	if style == "" {
		style = b.defaultStyle
	}
	if phrase, ok := b.styles[targetLang][style]; ok {
		return phrase
	}
	return b.fallbackStyle
}

// Prompt returns the instruction asking a model to translate content into
// targetLang in the given style.
func (b *Builder) Prompt(content, targetLang, style string) string {
	var out strings.Builder
	err := promptTmpl.Execute(&out, promptData{
		Language: b.LanguageName(targetLang),
		Style:    b.StylePhrase(targetLang, style),
		Content:  content,
	})
	if err != nil {
		log.Warn().Err(err).Str("target_lang", targetLang).Msg("executing translation prompt")
	}
	return out.String()
}

type promptData struct {
	Language string
	Style    string
	Content  string
}

var promptTmpl = template.Must(template.New("translate").Parse(`你是一位专业的{{.Language}}翻译专家，请将以下文本翻译成{{.Language}}。

翻译要求：
1. {{.Style}}
2. 保持原文的语气和风格
3. 确保专业术语的准确性
4. 保留原文的格式和段落结构
5. 适应目标语言的表达习惯和文化特点
6. 对于专有名词：
   - 若有官方翻译，使用官方翻译
   - 若无官方翻译，保留原文并在首次出现时用括号标注解释
7. 对于文化特定表达：
   - 优先使用目标语言中的对应表达
   - 若无对应表达，采用意译并在必要时添加解释
8. 对于缩写和简称：
   - 首次出现时给出完整翻译
   - 后续可使用目标语言的对应缩写

原文：
{{.Content}}

翻译：`))
