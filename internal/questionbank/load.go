package questionbank

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed data/questions.json
var embeddedBank []byte

// EmbeddedSource names the built-in bank in errors.
const EmbeddedSource = "embedded"

// bankSchema describes the on-disk bank format. Each question row is
// [prompt, A, B, C, D, answer].
var bankSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"properties": map[string]any{
		"books": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"enum": []any{string(BookChineseHistory), string(BookWorldHistory)}},
					"name": map[string]any{"type": "string"},
					"chapters": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":   map[string]any{"type": "string", "minLength": 1},
								"name": map[string]any{"type": "string"},
								"questions": map[string]any{
									"type": "array",
									"items": map[string]any{
										"type": "array",
										"prefixItems": []any{
											map[string]any{"type": "string", "minLength": 1},
											map[string]any{"type": "string"},
											map[string]any{"type": "string"},
											map[string]any{"type": "string"},
											map[string]any{"type": "string"},
											map[string]any{"enum": []any{"A", "B", "C", "D"}},
										},
										"minItems": 6,
										"items":    false,
									},
								},
							},
							"required":             []any{"id", "name", "questions"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"id", "chapters"},
				"additionalProperties": false,
			},
		},
	},
	"required": []any{"books"},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func bankValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://question-bank.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

type bankFile struct {
	Books []struct {
		ID       Book   `json:"id"`
		Name     string `json:"name"`
		Chapters []struct {
			ID        string     `json:"id"`
			Name      string     `json:"name"`
			Questions [][]string `json:"questions"`
		} `json:"chapters"`
	} `json:"books"`
}

// LoadEmbedded loads the bank compiled into the binary.
func LoadEmbedded() (*Bank, error) {
	return load(EmbeddedSource, bytes.NewReader(embeddedBank))
}

// LoadFile loads a bank from a JSON file on disk.
func LoadFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigurationError{Source: path, Err: err}
	}
	defer f.Close()
	return load(path, f)
}

// Load reads and validates a bank from r.
func Load(r io.Reader) (*Bank, error) {
	return load("reader", r)
}

func load(source string, r io.Reader) (*Bank, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &ConfigurationError{Source: source, Err: fmt.Errorf("read: %w", err)}
	}

	if err := validateBank(raw); err != nil {
		return nil, &ConfigurationError{Source: source, Err: err}
	}

	var file bankFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, &ConfigurationError{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}

	bank, err := buildBank(file)
	if err != nil {
		return nil, &ConfigurationError{Source: source, Err: err}
	}
	return bank, nil
}

func validateBank(raw []byte) error {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	v, err := bankValidator()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := v.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func buildBank(file bankFile) (*Bank, error) {
	b := newBank()
	var errs []string

	for _, book := range file.Books {
		if _, dup := b.bookNames[book.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate book %q", book.ID))
			continue
		}
		b.books = append(b.books, book.ID)
		b.bookNames[book.ID] = book.Name

		seenChapter := make(map[string]bool)
		for _, ch := range book.Chapters {
			if seenChapter[ch.ID] {
				errs = append(errs, fmt.Sprintf("duplicate chapter %q in %s", ch.ID, book.ID))
				continue
			}
			seenChapter[ch.ID] = true
			b.chapters[book.ID] = append(b.chapters[book.ID], Chapter{ID: ch.ID, Name: ch.Name})

			for i, row := range ch.Questions {
				q := Question{
					ID:      fmt.Sprintf("%s-%s-%d", book.ID, ch.ID, i),
					Prompt:  row[0],
					Answer:  Label(row[5]),
					Chapter: ch.ID,
					Book:    book.ID,
				}
				copy(q.Options[:], row[1:5])
				if !q.Answer.Valid() {
					errs = append(errs, fmt.Sprintf("question %s: answer %q does not name an option", q.ID, row[5]))
					continue
				}
				if _, dup := b.byID[q.ID]; dup {
					errs = append(errs, fmt.Sprintf("duplicate question id %q", q.ID))
					continue
				}
				b.byID[q.ID] = len(b.questions)
				b.questions = append(b.questions, q)
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.New(strings.Join(errs, "; "))
	}
	if len(b.questions) == 0 {
		return nil, errors.New("bank contains no questions")
	}
	return b, nil
}
