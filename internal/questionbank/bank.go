package questionbank

import (
	"slices"
)

// Bank is a read-only, indexed collection of questions grouped by book and chapter.
type Bank struct {
	questions []Question
	byID      map[string]int
	books     []Book
	bookNames map[Book]string
	chapters  map[Book][]Chapter
}

func newBank() *Bank {
	return &Bank{
		byID:      make(map[string]int),
		bookNames: make(map[Book]string),
		chapters:  make(map[Book][]Chapter),
	}
}

// FindByBookAndChapters returns every question in book whose chapter is in
// chapterIDs, in bank order. The result is a fresh slice the caller may reorder.
func (b *Bank) FindByBookAndChapters(book Book, chapterIDs []string) []Question {
	if len(chapterIDs) == 0 {
		return nil
	}
	wanted := make(map[string]bool, len(chapterIDs))
	for _, id := range chapterIDs {
		wanted[id] = true
	}

	var result []Question
	for _, q := range b.questions {
		if q.Book == book && wanted[q.Chapter] {
			result = append(result, q)
		}
	}
	return result
}

// Get returns the question with the given ID.
func (b *Bank) Get(id string) (Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i], true
}

// Books returns the books present in the bank, in file order.
func (b *Bank) Books() []Book {
	return slices.Clone(b.books)
}

// BookName returns the display name of a book, falling back to its ID.
func (b *Bank) BookName(book Book) string {
	if name, ok := b.bookNames[book]; ok && name != "" {
		return name
	}
	return string(book)
}

// Chapters returns the chapters of a book in file order.
func (b *Bank) Chapters(book Book) []Chapter {
	return slices.Clone(b.chapters[book])
}

// ChapterIDs returns just the IDs of a book's chapters.
func (b *Bank) ChapterIDs(book Book) []string {
	chapters := b.chapters[book]
	ids := make([]string, len(chapters))
	for i, c := range chapters {
		ids[i] = c.ID
	}
	return ids
}

// Len returns the total number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}
