// Package config holds the configuration of ContentLens: the immutable
// lookup tables the pipeline components are built from, and the runtime
// settings read through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Topic is a named category scored by keyword occurrences.
type Topic struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Tables are the selector, vocabulary and phrase tables the pipeline is
// built from. Components copy what they need at construction, so a Tables
// value can be discarded or reused afterwards.
type Tables struct {
	// RegionSelectors are tried in order; each entry may be a selector group.
	RegionSelectors []string `yaml:"region_selectors"`
	// NoiseSelectors are removed from the region before anything else.
	NoiseSelectors []string `yaml:"noise_selectors"`

	Stopwords      []string `yaml:"stopwords"`
	MaxKeywords    int      `yaml:"max_keywords"`
	Topics         []Topic  `yaml:"topics"`
	UnknownTopic   string   `yaml:"unknown_topic"`
	WordsPerMinute int      `yaml:"words_per_minute"`

	// Languages maps a language code to its display name in prompts.
	Languages map[string]string `yaml:"languages"`
	// Styles maps a language code to style hints and their phrases.
	Styles       map[string]map[string]string `yaml:"styles"`
	DefaultStyle string                       `yaml:"default_style"`
	// FallbackStyle is the phrase used when no style phrase is known.
	FallbackStyle string `yaml:"fallback_style"`

	// SummaryPresets maps a preset name to the system prompt sent with a
	// summary request. The custom entry is used when a custom prompt is
	// requested but left empty.
	SummaryPresets map[string]string `yaml:"summary_presets"`

	// RestrictedSchemes are page schemes extraction refuses to run on.
	RestrictedSchemes []string `yaml:"restricted_schemes"`
}

// Summary preset names with a fixed role.
const (
	PresetDefault = "default"
	PresetCustom  = "custom"
)

// ErrUnknownPreset is returned for a summary preset missing from the tables.
var ErrUnknownPreset = errors.New("unknown summary preset")

// SummaryPrompt resolves the system prompt for a summary. A non-empty custom
// prompt selects the custom preset and may not be combined with another
// preset; an empty preset means the default one.
func (t Tables) SummaryPrompt(preset, custom string) (string, error) {
	if custom != "" {
		if preset != "" && preset != PresetCustom {
			return "", fmt.Errorf("custom prompt given with preset %q", preset)
		}
		return custom, nil
	}
	if preset == "" {
		preset = PresetDefault
	}
	prompt, ok := t.SummaryPresets[preset]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownPreset, preset)
	}
	return prompt, nil
}

// DefaultTables returns the built-in tables.
func DefaultTables() Tables {
	return Tables{
		RegionSelectors: []string{
			"article",
			"main",
			".article-content, .post-content",
			"#content, .content",
			".main-content, .main",
			"body",
		},
		NoiseSelectors: []string{
			"script", "style", "iframe",
			"nav", "header", "footer",
			"#header", "#footer", ".header", ".footer",
			".navigation", ".nav", ".sidebar",
			".ad", ".advertisement", ".social-share",
			".related-posts", ".comments",
			"form", "button",
		},
		Stopwords: []string{
			"的", "了", "和", "是", "在", "我", "有", "就", "不", "人",
			"都", "一", "一个", "上", "也", "很", "到", "说", "要", "去",
			"你", "会", "着", "没有", "看", "好", "自己", "这",
		},
		MaxKeywords: 10,
		Topics: []Topic{
			{Name: "技术", Keywords: []string{"编程", "开发", "软件", "代码", "技术", "框架", "API", "服务器", "数据库", "算法"}},
			{Name: "新闻", Keywords: []string{"新闻", "报道", "记者", "消息", "事件", "现场", "采访", "调查", "发布", "公布"}},
			{Name: "教育", Keywords: []string{"教育", "学习", "考试", "课程", "学校", "老师", "学生", "教学", "培训", "知识"}},
			{Name: "商业", Keywords: []string{"企业", "公司", "市场", "经济", "投资", "产品", "营销", "销售", "管理", "战略"}},
			{Name: "科学", Keywords: []string{"研究", "科学", "实验", "数据", "分析", "发现", "证明", "理论", "假设", "结论"}},
		},
		UnknownTopic:   "未知",
		WordsPerMinute: 200,
		Languages: map[string]string{
			"en": "英语", "zh": "中文", "ja": "日语", "ko": "韩语",
			"fr": "法语", "de": "德语", "es": "西班牙语", "ru": "俄语",
			"it": "意大利语", "pt": "葡萄牙语", "nl": "荷兰语", "pl": "波兰语",
			"tr": "土耳其语", "ar": "阿拉伯语", "hi": "印地语", "th": "泰语",
			"vi": "越南语",
		},
		Styles: map[string]map[string]string{
			"en": {
				"formal":    "使用正式的英语表达，适合商务和学术场合",
				"casual":    "使用日常口语化的表达，适合非正式场合",
				"technical": "准确使用专业术语，保持技术文档的严谨性",
				"creative":  "采用生动活泼的表达方式，适合文学和创意内容",
			},
			"ja": {
				"keigo":     "使用敬语，适合正式场合",
				"casual":    "使用普通形式，适合日常交流",
				"anime":     "使用动漫风格的表达方式",
				"technical": "使用专业用语，适合技术文档",
			},
		},
		DefaultStyle:  "formal",
		FallbackStyle: "使用标准的书面语表达",
		SummaryPresets: map[string]string{
			PresetDefault: "你是一个专业的文本总结助手。请对提供的文本进行简洁的总结，突出重点内容。总结要求：\n1. 提炼核心观点\n2. 保持客观准确\n3. 语言简洁清晰\n4. 突出重要信息\n5. 结构清晰有序",
			"concise":     "请对文本进行简短精炼的总结，突出最核心的内容，使用简洁的语言，总结字数控制在200字以内。",
			"detailed":    "请对文本进行详细的分析总结，包括以下方面：\n1. 主要内容概述\n2. 关键论点分析\n3. 重要细节说明\n4. 逻辑关系梳理\n5. 总体评价",
			"creative":    "请以创新的视角解读文本内容，可以：\n1. 提供独特的见解\n2. 联系实际应用\n3. 探讨潜在影响\n4. 提出创新建议",
			"academic":    "请以学术的视角分析文本：\n1. 研究方法评估\n2. 论据可靠性分析\n3. 理论框架讨论\n4. 研究贡献点\n5. 局限性分析",
			PresetCustom:  "请总结文本的主要内容，突出重点。",
		},
		RestrictedSchemes: []string{"chrome", "chrome-extension", "about"},
	}
}

// LoadTables reads a YAML file on top of the defaults. Keys absent from the
// file keep their default values.
func LoadTables(path string) (Tables, error) {
	t := DefaultTables()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("reading tables %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("decoding tables %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return Tables{}, fmt.Errorf("tables %s: %w", path, err)
	}
	return t, nil
}

// Validate reports tables the pipeline cannot be built from.
func (t Tables) Validate() error {
	var errs []error
	if len(t.RegionSelectors) == 0 {
		errs = append(errs, errors.New("region_selectors must not be empty"))
	}
	if t.MaxKeywords < 0 {
		errs = append(errs, errors.New("max_keywords must not be negative"))
	}
	if t.WordsPerMinute <= 0 {
		errs = append(errs, errors.New("words_per_minute must be positive"))
	}
	for i, topic := range t.Topics {
		if topic.Name == "" {
			errs = append(errs, fmt.Errorf("topics[%d]: name required", i))
		}
		if slices.Contains(topic.Keywords, "") {
			errs = append(errs, fmt.Errorf("topic %q: empty keyword", topic.Name))
		}
	}
	for _, name := range []string{PresetDefault, PresetCustom} {
		if _, ok := t.SummaryPresets[name]; !ok {
			errs = append(errs, fmt.Errorf("summary_presets: %s preset required", name))
		}
	}
	for name, prompt := range t.SummaryPresets {
		if prompt == "" {
			errs = append(errs, fmt.Errorf("summary_presets: %s preset has an empty prompt", name))
		}
	}
	return errors.Join(errs...)
}
