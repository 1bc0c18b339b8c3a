package config

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"phpsniff/internal/casing"
)

const casingMemoSize = 4096

// Compiled is the read-only form of a Config shared by every scan.
type Compiled struct {
	Config *Config
	Calls  *CallTable
	Casing *casing.Memo
	Target PHPVersion

	// ProjectWords are the configured exceptions plus the exceptions file.
	ProjectWords []string
	// Fingerprint changes whenever anything that affects diagnostics changes.
	Fingerprint string

	integration    []*regexp.Regexp
	services       []*regexp.Regexp
	domains        map[string]bool
	domainPatterns []*regexp.Regexp
	htmlKeys       map[string]bool
	forbidden      map[string]string
}

// Compile validates cfg and builds the shared lookup structures. A relative
// exceptions file is resolved against the config file's directory.
func Compile(cfg *Config) (*Compiled, error) {
	if cfg == nil {
		cfg = Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	target, _ := ParsePHPVersion(cfg.Compat.Target)

	c := &Compiled{
		Config:    cfg,
		Calls:     NewCallTable(cfg.Calls.Translatable, cfg.Calls.ContextRequired),
		Target:    target,
		domains:   make(map[string]bool),
		htmlKeys:  make(map[string]bool),
		forbidden: make(map[string]string),
	}

	c.ProjectWords = append(c.ProjectWords, cfg.SentenceCase.Exceptions...)
	if file := cfg.SentenceCase.ExceptionsFile; file != "" {
		if !filepath.IsAbs(file) && cfg.Path != "" {
			file = filepath.Join(filepath.Dir(cfg.Path), file)
		}
		words, err := LoadExceptions(file)
		if err != nil {
			return nil, err
		}
		c.ProjectWords = append(c.ProjectWords, words...)
	}
	list := casing.NewList(casing.CoreWords, c.ProjectWords)
	c.Casing = casing.NewMemo(casing.NewChecker(list, casing.CautiousWords), casingMemoSize)

	var err error
	if c.integration, err = compilePatterns(cfg.Context.IntegrationPatterns); err != nil {
		return nil, errors.Errorf("context.integration_patterns: %w", err)
	}
	if c.services, err = compilePatterns(cfg.Context.ServicePatterns); err != nil {
		return nil, errors.Errorf("context.service_patterns: %w", err)
	}
	if c.domainPatterns, err = compilePatterns(cfg.TextDomains.Patterns); err != nil {
		return nil, errors.Errorf("text_domains.patterns: %w", err)
	}
	for _, d := range cfg.TextDomains.Core {
		c.domains[d] = true
	}
	for _, d := range cfg.TextDomains.Additional {
		c.domains[d] = true
	}
	for _, k := range cfg.Context.HTMLExceptionKeys {
		c.htmlKeys[k] = true
	}
	for name, hint := range cfg.ForbiddenFunctions {
		c.forbidden[strings.ToLower(name)] = hint
	}

	if c.Fingerprint, err = fingerprint(cfg, c.ProjectWords); err != nil {
		return nil, err
	}
	return c, nil
}

// compilePatterns accepts Go regexps and PHP-style "/re/flags" literals.
func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(fromDelimited(p))
		if err != nil {
			return nil, errors.Errorf("pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func fromDelimited(p string) string {
	if len(p) < 2 || p[0] != '/' {
		return p
	}
	end := strings.LastIndexByte(p, '/')
	if end <= 0 {
		return p
	}
	body, flags := p[1:end], p[end+1:]
	if strings.Trim(flags, "imsU") != "" {
		return p
	}
	if flags != "" {
		return "(?" + flags + ")" + body
	}
	return body
}

func fingerprint(cfg *Config, words []string) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return "", errors.Errorf("fingerprint config: %w", err)
	}
	for _, w := range words {
		buf.WriteString(w)
		buf.WriteByte(0)
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:8]), nil
}

func slashPath(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), `\`, "/")
}

// IsIntegration reports whether path lies in an integration directory.
func (c *Compiled) IsIntegration(path string) bool {
	p := slashPath(path)
	for _, re := range c.integration {
		if re.MatchString(p) {
			return true
		}
	}
	return false
}

// IntegrationName derives the translation context for path: the integration
// or service directory name with dashes as spaces and each word capitalised,
// or the configured default.
func (c *Compiled) IntegrationName(path string) string {
	p := slashPath(path)
	for _, group := range [][]*regexp.Regexp{c.integration, c.services} {
		for _, re := range group {
			if m := re.FindStringSubmatch(p); len(m) > 1 && m[1] != "" {
				return cases.Title(language.English, cases.NoLower).String(strings.ReplaceAll(m[1], "-", " "))
			}
		}
	}
	return c.Config.Context.Default
}

// ValidDomain reports whether d is an allowed text domain.
func (c *Compiled) ValidDomain(d string) bool {
	if c.domains[d] {
		return true
	}
	for _, re := range c.domainPatterns {
		if re.MatchString(d) {
			return true
		}
	}
	return false
}

// Domains lists the allowed literal domains in configured order.
func (c *Compiled) Domains() []string {
	out := append([]string{}, c.Config.TextDomains.Core...)
	return append(out, c.Config.TextDomains.Additional...)
}

// SkipQuoting reports whether the quoting rule is disabled for path.
func (c *Compiled) SkipQuoting(path string) bool {
	p := strings.ToLower(slashPath(path))
	for _, s := range c.Config.Quoting.SkipPaths {
		if s != "" && strings.Contains(p, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// HTMLExceptionKey reports whether an array key allows switching to esc_html_x.
func (c *Compiled) HTMLExceptionKey(key string) bool { return c.htmlKeys[key] }

// Forbidden returns the hint for a forbidden function name.
func (c *Compiled) Forbidden(name string) (string, bool) {
	hint, ok := c.forbidden[strings.ToLower(name)]
	return hint, ok
}
