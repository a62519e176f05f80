package atelier

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"atelier/auth"
	nt "atelier/entity"
	"atelier/message"
	"atelier/rest"
	"atelier/style"
)

const footerHeight = 2

// Model is the bubbletea model for the console. One screen per entity;
// window sizes broadcast to all screens, everything else goes to the
// active one.
type Model struct {
	screens []screenModel
	active  int
	loaded  []bool

	logger      nt.Logger
	ctx         context.Context
	errorString string
	status      string

	Width  int
	Height int
}

// NewModel builds the per-entity screens from the lookup lists and the
// layout overrides.
func NewModel(ctx context.Context, clt *rest.Client, caps auth.Capabilities, lk Lookups, layout *Layout, lgr nt.Logger, pageSize int) (model Model) {

	schemas := []nt.Schema{
		nt.CategorySchema(lk.Types, lk.Languages),
		nt.CategoryTypeSchema(),
		nt.LanguageSchema(),
		nt.SkillSchema(lk.Categories, lk.Languages),
		nt.PortfolioSchema(lk.Languages),
		nt.ProjectSchema(lk.Portfolios, lk.Languages),
	}
	for i := range schemas {
		layout.apply(&schemas[i])
	}

	screens := []screenModel{
		newScreen[nt.Category](ctx, schemas[0], clt, caps, lk.Languages, lgr, pageSize, seedCategory),
		newScreen[nt.CategoryType](ctx, schemas[1], clt, caps, lk.Languages, lgr, pageSize, seedCategoryType),
		newScreen[nt.Language](ctx, schemas[2], clt, caps, lk.Languages, lgr, pageSize, seedLanguage),
		newScreen[nt.Skill](ctx, schemas[3], clt, caps, lk.Languages, lgr, pageSize, seedSkill),
		newScreen[nt.Portfolio](ctx, schemas[4], clt, caps, lk.Languages, lgr, pageSize, seedPortfolio),
		newScreen[nt.Project](ctx, schemas[5], clt, caps, lk.Languages, lgr, pageSize, seedProject),
	}

	loaded := make([]bool, len(screens))
	loaded[0] = true

	model = Model{
		screens: screens,
		loaded:  loaded,
		logger:  lgr,
		ctx:     ctx,
	}
	return
}

func (m Model) Init() tea.Cmd {
	return m.screens[m.active].Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {

	case message.ErrorMsg:
		m.logger.Error(m.ctx, "error msg", msg.Err)
		m.errorString = msg.Err.Error()
		return m, nil

	case message.StatusMsg:
		m.status = msg.Text
		return m, nil

	case message.LogoutMsg:
		m.logger.Info(m.ctx, "session expired, logging out")
		return m, tea.Quit

	case tea.KeyPressMsg:
		m.errorString = ""
		m.status = ""

		_, modalOpen := m.screens[m.active].ModalRender()
		if !modalOpen {
			switch msg.String() {

			case "ctrl+c", "q", "esc":
				return m, tea.Quit

			case "1", "2", "3", "4", "5", "6":
				return m.switchScreen(int(msg.String()[0] - '1'))
			}
		}

		return m.updateActive(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		adjustedMsg := tea.WindowSizeMsg{
			Width:  msg.Width,
			Height: msg.Height - footerHeight,
		}

		var cmds []tea.Cmd
		for i := range m.screens {
			var cmd tea.Cmd
			m.screens[i], cmd = m.screens[i].Update(adjustedMsg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m.updateActive(msg)
}

func (m Model) View() tea.View {
	if m.Width == 0 {
		return tea.NewView("Loading...")
	}

	active := m.screens[m.active]

	screenLayer := lipgloss.NewLayer("screen", active.Render())

	current, total := active.Position()
	note := m.status
	if m.errorString != "" {
		note = m.errorString
	}
	footerContent := RenderFooter(current, total, note, active.Title(), m.Width)
	footerLayer := lipgloss.NewLayer("footer", footerContent).Y(m.Height - footerHeight)

	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(screenLayer)
	canvas.Compose(footerLayer)

	if dialog, open := active.ModalRender(); open {
		hPad := (m.Width - lipgloss.Width(dialog)) / 2
		vPad := (m.Height - lipgloss.Height(dialog)) / 2
		if hPad < 0 {
			hPad = 0
		}
		if vPad < 0 {
			vPad = 0
		}
		modalLayer := lipgloss.NewLayer("modal", dialog).X(hPad).Y(vPad)
		canvas.Compose(modalLayer)
	}

	view := tea.NewView(canvas)
	view.AltScreen = true
	view.BackgroundColor = style.BackgroundColor
	return view
}

// unexported

func (m Model) switchScreen(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(m.screens) || idx == m.active {
		return m, nil
	}

	m.active = idx
	if !m.loaded[idx] {
		m.loaded[idx] = true
		return m, m.screens[idx].Init()
	}
	return m, nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.screens[m.active], cmd = m.screens[m.active].Update(msg)
	return m, cmd
}

// seeds extract form values from a record for edit and delete.

func seedCategory(cat nt.Category) (map[string]any, []nt.Text) {
	return map[string]any{"code": cat.Code, "type_code": cat.TypeCode}, cat.Texts
}

func seedCategoryType(ct nt.CategoryType) (map[string]any, []nt.Text) {
	return map[string]any{"code": ct.Code, "name": ct.Name}, nil
}

func seedLanguage(lang nt.Language) (map[string]any, []nt.Text) {
	return map[string]any{"code": lang.Code, "name": lang.Name, "is_default": lang.IsDefault}, nil
}

func seedSkill(sk nt.Skill) (map[string]any, []nt.Text) {
	return map[string]any{"code": sk.Code, "category_code": sk.CategoryCode}, sk.Texts
}

func seedPortfolio(pf nt.Portfolio) (map[string]any, []nt.Text) {
	return map[string]any{"code": pf.Code}, pf.Texts
}

func seedProject(pr nt.Project) (map[string]any, []nt.Text) {
	return map[string]any{"code": pr.Code, "portfolio_id": pr.PortfolioID}, pr.Texts
}
