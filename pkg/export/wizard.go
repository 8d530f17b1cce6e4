// Interactive export wizard for the --export flag. It walks the user through
// picking a format, output path, and snapshot options.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/canopy/pkg/model"
)

// WizardConfig holds the choices collected by the export wizard.
type WizardConfig struct {
	Format     string `json:"format"` // "svg", "png", "sqlite"
	OutputPath string `json:"output_path"`
	Title      string `json:"title,omitempty"`
	FullTree   bool   `json:"full_tree"` // export from the dataset root instead of the focus
}

// Wizard collects export options interactively and runs the export.
type Wizard struct {
	config WizardConfig
	root   *model.Node // dataset root
	focus  *model.Node // current focus subtree
}

// NewWizard creates an export wizard. focus may equal root when the view is
// at the top of the dataset.
func NewWizard(root, focus *model.Node) *Wizard {
	return &Wizard{
		config: WizardConfig{Format: "svg", FullTree: focus == root},
		root:   root,
		focus:  focus,
	}
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// Run executes the interactive wizard flow and performs the export.
func (w *Wizard) Run() (*WizardConfig, error) {
	if w.root == nil {
		return nil, fmt.Errorf("no dataset loaded")
	}

	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Export format").
				Options(
					huh.NewOption("SVG snapshot", "svg"),
					huh.NewOption("PNG snapshot", "png"),
					huh.NewOption("SQLite database", "sqlite"),
				).
				Value(&w.config.Format),
			huh.NewConfirm().
				Title("Export the full dataset?").
				Description("Select No to export only the current focus subtree").
				Value(&w.config.FullTree),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output path").
				Placeholder("canopy-export").
				Value(&w.config.OutputPath),
			huh.NewInput().
				Title("Title (optional)").
				Value(&w.config.Title),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(w.config.OutputPath) == "" {
		w.config.OutputPath = "canopy-export"
	}
	w.config.OutputPath = ensureExtension(w.config.OutputPath, w.config.Format)

	if err := RunExport(w.config, w.root, w.focus); err != nil {
		return nil, err
	}
	return &w.config, nil
}

// RunExport performs a non-interactive export with the given config.
func RunExport(cfg WizardConfig, root, focus *model.Node) error {
	subject := focus
	if cfg.FullTree || subject == nil {
		subject = root
	}
	if subject == nil {
		return fmt.Errorf("no dataset loaded")
	}

	switch cfg.Format {
	case "svg", "png":
		return SaveSnapshot(SnapshotOptions{
			Path:   cfg.OutputPath,
			Format: cfg.Format,
			Title:  cfg.Title,
			Root:   subject,
		})
	case "sqlite":
		return NewSQLiteExporter(subject, cfg.Title).Export(cfg.OutputPath)
	default:
		return fmt.Errorf("unsupported export format %q", cfg.Format)
	}
}

func ensureExtension(path, format string) string {
	want := "." + format
	if format == "sqlite" {
		want = ".sqlite3"
	}
	if strings.EqualFold(filepath.Ext(path), want) {
		return path
	}
	if filepath.Ext(path) == "" {
		return path + want
	}
	return path
}
