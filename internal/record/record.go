// Package record defines the domain types for looptrack.
package record

import "time"

// DateFormat is the canonical key format for day-scoped records.
const DateFormat = "2006-01-02"

// SonicSketch is a short daily audio exercise.
type SonicSketch struct {
	DurationMinutes int       `json:"duration_minutes"`
	Description     string    `json:"description"`
	AudioFile       *string   `json:"audio_file,omitempty"`
	Tags            []string  `json:"tags"`
	Timestamp       time.Time `json:"timestamp"`
}

// VisualMoodboard is an ordered set of reference images around a theme.
type VisualMoodboard struct {
	Images       []string  `json:"images"`
	Theme        string    `json:"theme"`
	ColorPalette []string  `json:"color_palette"`
	Timestamp    time.Time `json:"timestamp"`
}

// LoreFragment is a piece of world-building prose tied to a character
// and narrative arc.
type LoreFragment struct {
	Character             string    `json:"character"`
	Fragment              string    `json:"fragment"`
	NarrativeArc          string    `json:"narrative_arc"`
	WorldBuildingElements []string  `json:"world_building_elements"`
	Timestamp             time.Time `json:"timestamp"`
}

// DailyInput groups the three input exercises for one calendar day.
// Keyed 1:1 by date ("2006-01-02") in the inputs collection.
type DailyInput struct {
	Date            string           `json:"date"`
	SonicSketch     *SonicSketch     `json:"sonic_sketch"`
	VisualMoodboard *VisualMoodboard `json:"visual_moodboard"`
	LoreFragment    *LoreFragment    `json:"lore_fragment"`
}

// Complete reports whether all three daily exercises are logged.
func (d DailyInput) Complete() bool {
	return d.SonicSketch != nil && d.VisualMoodboard != nil && d.LoreFragment != nil
}

// CreativeProcess records one sample → remix → render session.
type CreativeProcess struct {
	SampleSource      string    `json:"sample_source"`
	RemixApproach     string    `json:"remix_approach"`
	RenderFormat      string    `json:"render_format"`
	EmotionTag        string    `json:"emotion_tag"`
	Tempo             *int      `json:"tempo,omitempty"`
	LoreArcConnection string    `json:"lore_arc_connection"`
	Timestamp         time.Time `json:"timestamp"`
}

// OutputKind is the closed set of release kinds.
type OutputKind string

const (
	KindMicro OutputKind = "micro" // weekly lightweight release
	KindMajor OutputKind = "major" // monthly substantial release
	KindVST3  OutputKind = "vst3"  // weekly plugin build, 4 per month
)

// ParseOutputKind validates a kind string at the store boundary.
func ParseOutputKind(s string) (OutputKind, bool) {
	switch OutputKind(s) {
	case KindMicro, KindMajor, KindVST3:
		return OutputKind(s), true
	}
	return "", false
}

// CreativeOutput is a released artifact. Ids are assigned per kind as
// "<kind>_<n>" with n counting existing outputs of that kind; ids are
// never reused (outputs cannot be deleted).
type CreativeOutput struct {
	Title       string     `json:"title"`
	Kind        OutputKind `json:"output_type"`
	Category    string     `json:"category"`
	FilePath    *string    `json:"file_path,omitempty"`
	Description string     `json:"description"`
	ReleaseDate time.Time  `json:"release_date"`
	Tags        []string   `json:"tags"`
	ModifiedAt  *time.Time `json:"modified_date,omitempty"`
}

// Task is one item in a weekly or monthly task list.
type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// TaskList is the document shape of a per-type task file.
type TaskList struct {
	Tasks []Task `json:"tasks"`
}

// Payment is a recurring monthly expense.
type Payment struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Amount    float64    `json:"amount"`
	Category  string     `json:"category"`
	Notes     string     `json:"notes"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// PaymentList is the document shape of the payments file.
type PaymentList struct {
	Payments []Payment `json:"payments"`
}

// Activity is one calendar index entry. Shape varies by activity type,
// so it stays a loose map like the backing JSON.
type Activity map[string]any

// Calendar indexes logged activity by "2006-01" month key, then
// zero-padded day, then activity type. It duplicates data held in the
// inputs/outputs collections and is append-only; an edit to a logged
// record is not reflected here. That divergence is a known property of
// the index, not something callers should try to reconcile.
type Calendar map[string]map[string]map[string][]Activity
