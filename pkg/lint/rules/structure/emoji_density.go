package structure

import (
	"fmt"
	"regexp"

	"github.com/leapstack-labs/spectralint/pkg/lint"
)

func init() {
	lint.Register(EmojiDensity)
}

// DefaultMaxEmoji is the emoji count at which a file is reported.
const DefaultMaxEmoji = 10

// EmojiDensity flags files decorated with many emoji.
var EmojiDensity = lint.RuleDef{
	ID:          "emoji-density",
	Name:        "structure.emoji_density",
	Group:       "structure",
	Description: "Too many decorative emoji",
	Severity:    lint.SeverityInfo,
	Kind:        lint.KindPerFile,
	StrictOnly:  true,
	CheckFile:   checkEmojiDensity,
	ConfigKeys:  []string{"max_emoji"},
	Rationale: `Emoji cost tokens and carry no instruction. Pictographs, dingbats and
similar symbols outside code blocks are counted; digits and # are not.`,
	Fix: "Remove decorative emoji.",
}

// ASCII digits and # carry the Emoji property but are not counted.
var emojiPattern = regexp.MustCompile(`[` +
	`\x{2600}-\x{27BF}` +
	`\x{1F300}-\x{1F9FF}` +
	`\x{1FA00}-\x{1FAFF}` +
	`\x{2B50}\x{2B55}` +
	`\x{23E9}-\x{23F3}` +
	`\x{231A}\x{231B}` +
	`\x{25AA}\x{25AB}` +
	`\x{25FB}-\x{25FE}` +
	`\x{2934}\x{2935}` +
	`\x{2B05}-\x{2B07}` +
	`]`)

func checkEmojiDensity(ctx *lint.FileContext) []lint.Diagnostic {
	limit := ctx.Options.Int("max_emoji", DefaultMaxEmoji)
	count := 0
	for _, l := range ctx.Doc.NonCodeLines() {
		count += len(emojiPattern.FindAllStringIndex(l.Text, -1))
	}
	if count < limit {
		return nil
	}
	return []lint.Diagnostic{ctx.Diag(1, lint.SeverityInfo, fmt.Sprintf(
		"File contains %d emoji (threshold: %d). Emoji add visual noise without instruction value for agents.",
		count, limit))}
}
