// Package render produces the persisted body of a saves message.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateSavesMessage is the name of the saves list template.
const TemplateSavesMessage = "saves-message"

// TokenRow is one target in the rendered list.
type TokenRow struct {
	Name      string
	TokenUUID string
	// Hidden is "gm" for hidden tokens and "all" otherwise.
	Hidden    string
	Image     string
	Scale     float64
	HasResult bool
	Healed    bool
	// DegreeOfSuccess falls back to "failure" when there is no result.
	DegreeOfSuccess      string
	RollValue            int
	DegreeOfSuccessLabel string
	// PlayerOwned is "pc" or "npc".
	PlayerOwned string
}

// View is the data handed to the saves-message template.
type View struct {
	Label        *saves.Label
	SavesLabel   string
	DCVisibility string
	RollLabel    string
	Tokens       []TokenRow
}

// Renderer turns records into message content.
type Renderer struct {
	directory          world.Directory
	localizer          *Localizer
	templates          *template.Template
	ignoreHealingSaves bool
	showDCs            bool
	logger             *zap.Logger
}

// Config holds the dependencies of a Renderer
type Config struct {
	Directory world.Directory
	// Localizer defaults to the English catalog.
	Localizer *Localizer
	// IgnoreHealingSaves marks tokens a healing effect would heal as healed.
	IgnoreHealingSaves bool
	// ShowDCs shows the DC to everyone instead of owners only.
	ShowDCs bool
	Logger  *zap.Logger
}

// New creates a Renderer
func New(cfg *Config) (*Renderer, error) {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Directory == nil {
		panic("directory is required")
	}

	localizer := cfg.Localizer
	if localizer == nil {
		var err error
		if localizer, err = NewEnglishLocalizer(); err != nil {
			return nil, err
		}
	}

	tmpl, err := template.New("render").
		Funcs(template.FuncMap{"localize": localizer.Localize}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Renderer{
		directory:          cfg.Directory,
		localizer:          localizer,
		templates:          tmpl,
		ignoreHealingSaves: cfg.IgnoreHealingSaves,
		showDCs:            cfg.ShowDCs,
		logger:             logger,
	}, nil
}

// Localizer returns the renderer's localizer
func (r *Renderer) Localizer() *Localizer {
	return r.localizer
}

// Render renders the saves message body for a record.
func (r *Renderer) Render(ctx context.Context, rec *saves.Record) (string, error) {
	view := r.View(ctx, rec)

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, TemplateSavesMessage, view); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", TemplateSavesMessage, err)
	}
	return buf.String(), nil
}

// View builds the template data. Targets that no longer resolve are left out.
func (r *Renderer) View(ctx context.Context, rec *saves.Record) *View {
	view := &View{
		Label:        rec.Label,
		DCVisibility: "owner",
		RollLabel:    strings.TrimSpace(r.localizer.Localize(KeyRollSave, "")),
	}
	if r.showDCs {
		view.DCVisibility = "all"
	}
	if info := rec.SaveInfo; info != nil && info.DC != 0 && info.SaveType != "" {
		view.SavesLabel = r.localizer.SaveLabel(info.DC, info.SaveType, info.Basic)
		view.RollLabel = r.localizer.Localize(KeyRollSave, r.localizer.SaveName(info.SaveType))
	}

	var healing *saves.HealingTraits
	if r.ignoreHealingSaves && rec.Origin.HasRollOption("healing") {
		traits := saves.HealingTraitsFromOptions(rec.Origin.RollOptions)
		healing = &traits
	}

	for _, uuid := range rec.Targets {
		token, err := r.directory.Token(ctx, uuid)
		if err != nil {
			r.logger.Debug("skipping unresolved target", zap.String("token", uuid), zap.Error(err))
			continue
		}
		view.Tokens = append(view.Tokens, r.row(ctx, rec, token, healing))
	}
	return view
}

func (r *Renderer) row(ctx context.Context, rec *saves.Record, token *world.Token, healing *saves.HealingTraits) TokenRow {
	actor := world.TokenActor(ctx, r.directory, token)

	row := TokenRow{
		Name:            token.Name,
		TokenUUID:       token.UUID,
		Hidden:          "all",
		Image:           token.Image,
		Scale:           max(1, token.Scale),
		PlayerOwned:     "npc",
		DegreeOfSuccess: saves.Failure.String(),
	}
	if token.Hidden {
		row.Hidden = "gm"
	}
	if token.PlayerOwned {
		row.PlayerOwned = "pc"
	}
	if healing != nil {
		row.Healed = saves.CanApplyHealing(actor, *healing)
	}
	if result, ok := rec.Result(token.UUID); ok {
		row.HasResult = true
		row.DegreeOfSuccess = result.DegreeOfSuccess.String()
		row.RollValue = result.RollValue
	}
	row.DegreeOfSuccessLabel = KeyDegreePrefix + row.DegreeOfSuccess
	return row
}
