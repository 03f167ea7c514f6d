package translate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gaurav-prasanna/contentlens/core/config"
	"github.com/gaurav-prasanna/contentlens/core/translate"
)

func TestBuilder_StylePhrase(t *testing.T) {
	t.Parallel()

	b := translate.NewBuilder(config.DefaultTables())

	tests := []struct {
		name  string
		lang  string
		style string
		want  string
	}{
		{name: "known style", lang: "en", style: "technical", want: "准确使用专业术语，保持技术文档的严谨性"},
		{name: "empty style is formal", lang: "en", style: "", want: "使用正式的英语表达，适合商务和学术场合"},
		{name: "japanese keigo", lang: "ja", style: "keigo", want: "使用敬语，适合正式场合"},
		{name: "no formal style in japanese", lang: "ja", style: "", want: "使用标准的书面语表达"},
		{name: "unknown language", lang: "fr", style: "casual", want: "使用标准的书面语表达"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, b.StylePhrase(tt.lang, tt.style))
		})
	}
}

func TestBuilder_Prompt(t *testing.T) {
	t.Parallel()

	b := translate.NewBuilder(config.DefaultTables())

	t.Run("names the language and carries the content", func(t *testing.T) {
		t.Parallel()

		got := b.Prompt("Hello, world.", "ja", "casual")

		assert.True(t, strings.HasPrefix(got, "你是一位专业的日语翻译专家，请将以下文本翻译成日语。"))
		assert.Contains(t, got, "1. 使用普通形式，适合日常交流\n")
		assert.True(t, strings.HasSuffix(got, "原文：\nHello, world.\n\n翻译："))
	})

	t.Run("unknown code is used as is", func(t *testing.T) {
		t.Parallel()

		got := b.Prompt("x", "eo", "")

		assert.Contains(t, got, "专业的eo翻译专家")
		assert.Contains(t, got, "1. 使用标准的书面语表达\n")
	})

	t.Run("template markup in the content is kept verbatim", func(t *testing.T) {
		t.Parallel()

		got := b.Prompt("{{.Language}} and {{", "en", "formal")

		assert.True(t, strings.HasSuffix(got, "原文：\n{{.Language}} and {{\n\n翻译："))
	})

	t.Run("tables are copied", func(t *testing.T) {
		t.Parallel()

		tables := config.DefaultTables()
		own := translate.NewBuilder(tables)
		tables.Languages["en"] = "English"
		tables.Styles["en"]["formal"] = "changed"

		assert.Equal(t, "英语", own.LanguageName("en"))
		assert.Equal(t, "使用正式的英语表达，适合商务和学术场合", own.StylePhrase("en", "formal"))
	})
}
