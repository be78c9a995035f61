package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/ameliahb/go-inner-library/internal/db"
	"github.com/ameliahb/go-inner-library/internal/mood"
	"github.com/ameliahb/go-inner-library/internal/prompt"
	"github.com/ameliahb/go-inner-library/internal/shelf"
)

// TemplateManager handles loading and rendering HTML templates.
type TemplateManager struct {
	templates map[string]*template.Template
}

// NewTemplateManager loads all templates from the given filesystem.
func NewTemplateManager(fsys fs.FS) (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	layouts, err := fs.Glob(fsys, "layouts/*.html")
	if err != nil {
		return nil, fmt.Errorf("globbing layouts: %w", err)
	}

	partials, err := fs.Glob(fsys, "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("globbing partials: %w", err)
	}

	pages, err := fs.Glob(fsys, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("globbing pages: %w", err)
	}

	// Each page is parsed together with the layouts and partials so it can
	// fill the base layout's blocks.
	for _, page := range pages {
		name := filepath.Base(page)

		files := make([]string, 0, len(layouts)+len(partials)+1)
		files = append(files, layouts...)
		files = append(files, partials...)
		files = append(files, page)

		tmpl, err := template.New(name).Funcs(defaultFuncs()).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		tm.templates[name] = tmpl
	}

	return tm, nil
}

// Render executes the named page template into w.
func (tm *TemplateManager) Render(w io.Writer, name string, data any) error {
	tmpl, ok := tm.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

// defaultFuncs returns the function map available to all templates.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
		"formatTime": func(t time.Time) string {
			return t.Format("3:04 PM")
		},
		"formatMonth": func(key string) string {
			t, err := time.Parse("2006-01", key)
			if err != nil {
				return key
			}
			return t.Format("January 2006")
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// ============================================================================
// Page Data Types
// ============================================================================

// PageData is the base data passed to all templates.
type PageData struct {
	Title       string
	User        *UserData
	Flash       *FlashMessage
	CurrentPath string
}

// UserData holds display info for the logged-in user.
type UserData struct {
	ID   string
	Name string
}

// FlashMessage is a one-time notification shown at the top of a page.
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// HomePageData is the data for the landing page.
type HomePageData struct {
	PageData
}

// DashboardPageData is the data for the main dashboard: the writing
// surface with its prompt, mood pickers and recent entries.
type DashboardPageData struct {
	PageData
	Prompt     prompt.Prompt
	TimeOfDay  prompt.TimeOfDay
	Presets    []mood.Mood
	Palette    []mood.Mood
	Recent     []db.Entry
	Books      []shelf.Book
	ContentErr string
	MoodErr    string
	Content    string
}

// JournalPageData is the data for the bookshelf and mood calendar view.
type JournalPageData struct {
	PageData
	Books    []shelf.Book
	Calendar [][]shelf.Day
	Year     int
	Total    int
}

// EntryPageData is the data for a single entry with its album membership.
type EntryPageData struct {
	PageData
	Entry     *db.Entry
	Albums    []db.Album
	MemberIDs map[string]bool
}

// AlbumsPageData is the data for the album listing.
type AlbumsPageData struct {
	PageData
	Albums  []db.Album
	NameErr string
}

// AlbumPageData is the data for a single album and its entries.
type AlbumPageData struct {
	PageData
	Album   *db.Album
	Entries []db.Entry
}
