package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	mathrand "math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ameliahb/go-inner-library/internal/albums"
	"github.com/ameliahb/go-inner-library/internal/db"
	"github.com/ameliahb/go-inner-library/internal/identity"
	"github.com/ameliahb/go-inner-library/internal/journal"
	"github.com/ameliahb/go-inner-library/internal/mood"
	"github.com/ameliahb/go-inner-library/internal/prompt"
	"github.com/ameliahb/go-inner-library/internal/shelf"
)

// recentEntryLimit caps the dashboard's recent-entries list.
const recentEntryLimit = 3

type contextKey string

const sessionContextKey contextKey = "session"

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	provider  *identity.Provider
	sessions  SessionManager
	templates *TemplateManager
	database  *db.DB
	journal   *journal.Service
	albums    *albums.Service
	prompts   *prompt.Selector
	recents   *mood.RecentStore
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	provider *identity.Provider,
	sessions SessionManager,
	templates *TemplateManager,
	database *db.DB,
	journalSvc *journal.Service,
	albumSvc *albums.Service,
	prompts *prompt.Selector,
	recents *mood.RecentStore,
) *Handlers {
	return &Handlers{
		provider:  provider,
		sessions:  sessions,
		templates: templates,
		database:  database,
		journal:   journalSvc,
		albums:    albumSvc,
		prompts:   prompts,
		recents:   recents,
	}
}

// ============================================================================
// Auth
// ============================================================================

// RequireAuth redirects unauthenticated requests to the landing page and
// stashes the session in the request context for downstream handlers.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := h.sessions.GetFromRequest(r)
		if session == nil {
			http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the session RequireAuth placed in the context.
func sessionFrom(r *http.Request) *Session {
	session, _ := r.Context().Value(sessionContextKey).(*Session)
	return session
}

// Login initiates the identity provider's OAuth flow (GET /auth/login).
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	// Generate state for CSRF protection
	state, err := generateOAuthState()
	if err != nil {
		http.Error(w, "Failed to generate state", http.StatusInternalServerError)
		return
	}

	// Store state in cookie for validation on callback
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300, // 5 minutes
	})

	http.Redirect(w, r, h.provider.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// Callback handles the OAuth callback from the identity provider
// (GET /auth/callback).
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	// Verify state
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil {
		http.Error(w, "Missing state cookie", http.StatusBadRequest)
		return
	}

	state := r.URL.Query().Get("state")
	if state != stateCookie.Value {
		http.Error(w, "State mismatch", http.StatusBadRequest)
		return
	}

	// Clear state cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		http.Error(w, "Identity provider error: "+errMsg, http.StatusBadRequest)
		return
	}

	token, err := h.provider.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		http.Error(w, "Failed to exchange code", http.StatusInternalServerError)
		return
	}

	user, err := h.provider.FetchUser(r.Context(), token)
	if err != nil {
		http.Error(w, "Failed to fetch user info", http.StatusInternalServerError)
		return
	}

	// The webhook mirrors users into the database, but a login can arrive
	// before the webhook does. Upsert so the row exists either way.
	if err := h.database.Users().Upsert(r.Context(), &db.User{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Credential: uuid.NewString(),
	}); err != nil {
		log.Printf("Error upserting user %s: %v", user.ID, err)
		http.Error(w, "Failed to provision user", http.StatusInternalServerError)
		return
	}

	session, err := h.sessions.Create(r.Context(), token, user.ID, user.DisplayName())
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	h.sessions.SetCookie(w, session)

	http.Redirect(w, r, "/dashboard", http.StatusTemporaryRedirect)
}

// Logout clears the session and redirects to home (POST /auth/logout).
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if session := h.sessions.GetFromRequest(r); session != nil {
		h.sessions.Delete(r.Context(), session.ID)
	}
	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

// ============================================================================
// Pages
// ============================================================================

// Home handles the landing page (GET /). Logged-in users go straight to
// their dashboard.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	if session := h.sessions.GetFromRequest(r); session != nil {
		http.Redirect(w, r, "/dashboard", http.StatusTemporaryRedirect)
		return
	}

	data := HomePageData{
		PageData: PageData{
			Title:       "Your Inner Library",
			CurrentPath: r.URL.Path,
		},
	}
	h.render(w, "home.html", data)
}

// Dashboard handles the writing surface (GET /dashboard).
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.renderDashboard(w, r, DashboardPageData{})
}

// renderDashboard fills in the prompt, palette and recent entries around
// whatever form state the caller carried over.
func (h *Handlers) renderDashboard(w http.ResponseWriter, r *http.Request, data DashboardPageData) {
	session := sessionFrom(r)
	now := time.Now()

	picked, err := h.prompts.Pick(now)
	if err != nil {
		log.Printf("Error picking prompt: %v", err)
		// A broken history file should not take down the writing surface.
		picked = prompt.Prompt{Text: "What is on your mind right now?"}
	}

	entries, err := h.journal.All(r.Context(), session.UserID)
	if err != nil {
		http.Error(w, "Failed to load entries", http.StatusInternalServerError)
		return
	}

	recent := entries
	if len(recent) > recentEntryLimit {
		recent = recent[:recentEntryLimit]
	}

	data.PageData = h.pageData("Dashboard", r, session)
	data.Prompt = picked
	data.TimeOfDay = prompt.Bucket(now)
	data.Presets = mood.Presets
	data.Palette = mood.Palette(entries)
	data.Recent = recent
	data.Books = shelf.Build(entries)
	h.render(w, "dashboard.html", data)
}

// CreateEntry handles entry composition (POST /entries).
func (h *Handlers) CreateEntry(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	content := r.FormValue("content")
	m := mood.Mood{
		Word:  strings.TrimSpace(r.FormValue("mood_word")),
		Color: strings.TrimSpace(r.FormValue("mood_color")),
	}
	tags := splitTags(r.FormValue("tags"))

	entry, err := h.journal.Compose(r.Context(), session.UserID, content, m, tags)
	switch {
	case errors.Is(err, journal.ErrEmptyContent):
		h.renderDashboard(w, r, DashboardPageData{
			ContentErr: "Write something before saving.",
			Content:    content,
		})
		return
	case errors.Is(err, mood.ErrUnset):
		h.renderDashboard(w, r, DashboardPageData{
			MoodErr: "Pick a mood before saving.",
			Content: content,
		})
		return
	case err != nil:
		log.Printf("Error saving entry: %v", err)
		http.Error(w, "Failed to save entry", http.StatusInternalServerError)
		return
	}

	if _, err := h.recents.Record(m.Word); err != nil {
		// Device-local convenience state; losing it is not worth failing
		// the save.
		log.Printf("Error recording recent mood: %v", err)
	}

	http.Redirect(w, r, "/entries/"+entry.ID.String(), http.StatusSeeOther)
}

// Entry handles the single-entry page (GET /entries/{id}).
func (h *Handlers) Entry(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	entry, err := h.journal.Get(r.Context(), id, session.UserID)
	if errors.Is(err, db.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load entry", http.StatusInternalServerError)
		return
	}

	userAlbums, err := h.database.Albums().ListByUser(r.Context(), session.UserID)
	if err != nil {
		http.Error(w, "Failed to load albums", http.StatusInternalServerError)
		return
	}

	memberIDs, err := h.database.Memberships().AlbumIDs(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to load album membership", http.StatusInternalServerError)
		return
	}
	members := make(map[string]bool, len(memberIDs))
	for _, albumID := range memberIDs {
		members[albumID.String()] = true
	}

	data := EntryPageData{
		PageData:  h.pageData(entry.Title, r, session),
		Entry:     entry,
		Albums:    userAlbums,
		MemberIDs: members,
	}
	h.render(w, "entry.html", data)
}

// SaveEntryAlbums reconciles an entry's album membership against the
// submitted checkbox selection (POST /entries/{id}/albums).
func (h *Handlers) SaveEntryAlbums(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	var selected []uuid.UUID
	for _, raw := range r.Form["albums"] {
		albumID, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "Invalid album ID", http.StatusBadRequest)
			return
		}
		selected = append(selected, albumID)
	}

	if _, err := h.albums.Reconcile(r.Context(), session.UserID, id, selected); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Printf("Error reconciling albums for entry %s: %v", id, err)
		http.Error(w, "Failed to save albums", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/entries/"+id.String(), http.StatusSeeOther)
}

// Journal handles the bookshelf and mood calendar (GET /journal).
func (h *Handlers) Journal(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	entries, err := h.journal.All(r.Context(), session.UserID)
	if err != nil {
		http.Error(w, "Failed to load entries", http.StatusInternalServerError)
		return
	}

	year := time.Now().Year()
	data := JournalPageData{
		PageData: h.pageData("Journal", r, session),
		Books:    shelf.Build(entries),
		Calendar: shelf.Calendar(entries, year, time.Local),
		Year:     year,
		Total:    len(entries),
	}
	h.render(w, "journal.html", data)
}

// Albums handles the album listing (GET /albums).
func (h *Handlers) Albums(w http.ResponseWriter, r *http.Request) {
	h.renderAlbums(w, r, AlbumsPageData{})
}

func (h *Handlers) renderAlbums(w http.ResponseWriter, r *http.Request, data AlbumsPageData) {
	session := sessionFrom(r)

	userAlbums, err := h.database.Albums().ListByUser(r.Context(), session.UserID)
	if err != nil {
		http.Error(w, "Failed to load albums", http.StatusInternalServerError)
		return
	}

	data.PageData = h.pageData("Albums", r, session)
	data.Albums = userAlbums
	h.render(w, "albums.html", data)
}

// CreateAlbum handles album creation (POST /albums).
func (h *Handlers) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		h.renderAlbums(w, r, AlbumsPageData{NameErr: "Give the album a name."})
		return
	}

	color := strings.TrimSpace(r.FormValue("color"))
	if color == "" {
		color = mood.HueToHex(mathrand.Intn(360))
	}

	album := &db.Album{
		UserID:      session.UserID,
		Title:       title,
		Description: strings.TrimSpace(r.FormValue("description")),
		Color:       color,
	}
	if err := h.database.Albums().Create(r.Context(), album); err != nil {
		log.Printf("Error creating album: %v", err)
		http.Error(w, "Failed to create album", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/albums/"+album.ID.String(), http.StatusSeeOther)
}

// Album handles the single-album page (GET /albums/{id}).
func (h *Handlers) Album(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	album, err := h.database.Albums().Get(r.Context(), id, session.UserID)
	if errors.Is(err, db.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load album", http.StatusInternalServerError)
		return
	}

	entries, err := h.database.Albums().ListEntries(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to load album entries", http.StatusInternalServerError)
		return
	}

	data := AlbumPageData{
		PageData: h.pageData(album.Title, r, session),
		Album:    album,
		Entries:  entries,
	}
	h.render(w, "album.html", data)
}

// ============================================================================
// Helpers
// ============================================================================

func (h *Handlers) pageData(title string, r *http.Request, session *Session) PageData {
	return PageData{
		Title:       title,
		CurrentPath: r.URL.Path,
		User: &UserData{
			ID:   session.UserID,
			Name: session.UserName,
		},
	}
}

func (h *Handlers) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, name, data); err != nil {
		log.Printf("Error rendering %s: %v", name, err)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

// splitTags parses a comma-separated tag field, dropping empties.
func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// generateOAuthState creates a random state string for CSRF protection.
func generateOAuthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
