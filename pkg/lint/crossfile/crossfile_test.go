package crossfile

import (
	"github.com/leapstack-labs/spectralint/internal/testutil"
	"github.com/leapstack-labs/spectralint/pkg/lint"
	"github.com/leapstack-labs/spectralint/pkg/lint/corpus"
	"github.com/leapstack-labs/spectralint/pkg/lint/document"
)

// buildCorpus parses files (rel path -> content) into a corpus rooted at /p.
func buildCorpus(files map[string]string, historical ...string) *corpus.Corpus {
	docs := make([]*document.Document, 0, len(files))
	for rel, content := range files {
		docs = append(docs, document.Parse("/p/"+rel, rel, []byte(content)))
	}
	return corpus.New("/p", docs, historical)
}

func run(def lint.RuleDef, c *corpus.Corpus, opts lint.Options) []lint.Diagnostic {
	return lint.Rule{Def: def, Options: opts}.EvaluateCorpus(c)
}

func diagsFor(diags []lint.Diagnostic, file string) []lint.Diagnostic {
	var out []lint.Diagnostic
	for _, d := range diags {
		if d.File == file {
			out = append(out, d)
		}
	}
	return out
}

var lines = testutil.Lines
