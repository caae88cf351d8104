// Package classifier decides how a fenced documentation block is verified.
//
// Classification is a pure function of the block's language tag and content.
// A config-tagged block can be one of several independently loadable documents,
// so its content is inspected for section markers:
//
//	```toml              ```toml             ```toml
//	[lib]                [[users]]           [general]
//	...                  name = "alice"      port = 6432
//	```                  ```                 ```
//	   -> Skip              -> users config     -> main config
package classifier

import (
	"slices"
	"strings"

	"github.com/harrison/docverify/internal/models"
)

// Rules holds the tags and markers the classifier matches against.
type Rules struct {
	ConfigTag   string   // Language tag of config blocks
	QueryTags   []string // Language tags of query blocks
	UsersMarker string   // Marks a users document
	LibMarker   string   // Marks a library-only fragment that cannot be loaded on its own
}

// DefaultRules returns the rules used when no configuration overrides them.
func DefaultRules() Rules {
	return Rules{
		ConfigTag:   "toml",
		QueryTags:   []string{"postgresql"},
		UsersMarker: "[[users]]",
		LibMarker:   "[lib]",
	}
}

// Classify applies the default rules.
func Classify(tag, content string) models.Classification {
	return DefaultRules().Classify(tag, content)
}

// Classify returns the verification strategy for a block. First match wins:
// a lib marker skips the block even when a users marker is also present.
func (r Rules) Classify(tag, content string) models.Classification {
	switch {
	case tag != "" && tag == r.ConfigTag:
		return r.classifyConfig(content)
	case tag != "" && slices.Contains(r.QueryTags, tag):
		return models.VerifyAsQuery
	default:
		return models.Skip
	}
}

func (r Rules) classifyConfig(content string) models.Classification {
	switch {
	case r.LibMarker != "" && strings.Contains(content, r.LibMarker):
		return models.Skip
	case r.UsersMarker != "" && strings.Contains(content, r.UsersMarker):
		return models.VerifyAsUsersConfig
	default:
		return models.VerifyAsMainConfig
	}
}
