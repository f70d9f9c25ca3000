package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/biztime/internal/company"
	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

type companiesState int

const (
	companiesStateBrowse companiesState = iota
	companiesStateCreate
	companiesStateEdit
	companiesStateDelete
)

// companyFields holds huh form bindings. It lives behind a pointer so the
// bindings survive the model being copied between updates.
type companyFields struct {
	code        string
	name        string
	description string
	confirm     bool
}

type CompaniesModel struct {
	CommonModel
	companyService *company.Service
	invoiceService *invoice.Service

	state     companiesState
	table     table.Model
	companies []*company.Company
	detail    *invoice.CompanyInvoices
	form      *huh.Form
	fields    *companyFields

	loading bool
	err     error
	status  string
}

func NewCompaniesModel(companySvc *company.Service, invoiceSvc *invoice.Service) CompaniesModel {
	t := newTable([]table.Column{
		{Title: "Code", Width: 12},
		{Title: "Name", Width: 40},
	})

	return CompaniesModel{
		companyService: companySvc,
		invoiceService: invoiceSvc,
		table:          t,
		fields:         &companyFields{},
		loading:        true,
	}
}

func (m CompaniesModel) Title() string { return "Companies" }

func (m CompaniesModel) ShortHelp() string {
	if m.state != companiesStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Enter: invoices | n: new | e: edit | x: delete | r: refresh"
}

func (m CompaniesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CompaniesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCompaniesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.companies = msg.companies
		m.refreshTable()

		return m, nil

	case companyDetailMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.detail = msg.detail

		return m, nil

	case companySavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = companiesStateBrowse
		m.form = nil
		m.detail = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == companiesStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m CompaniesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			if m.detail != nil {
				m.detail = nil
				return m, nil
			}

			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "enter":
			if c := m.selected(); c != nil {
				return m, m.detailCmd(c.Code)
			}

			return m, nil
		case "n":
			return m.enterForm(companiesStateCreate)
		case "e":
			return m.enterForm(companiesStateEdit)
		case "x":
			return m.enterForm(companiesStateDelete)
		}
	}

	var cmd tea.Cmd

	prev := m.table.Cursor()
	m.table, cmd = m.table.Update(msg)

	if m.table.Cursor() != prev {
		m.detail = nil
	}

	return m, cmd
}

func (m CompaniesModel) enterForm(state companiesState) (tea.Model, tea.Cmd) {
	*m.fields = companyFields{}

	switch state {
	case companiesStateCreate:
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Code").Value(&m.fields.code).Validate(notBlank("code")),
				huh.NewInput().Title("Name").Value(&m.fields.name).Validate(notBlank("name")),
				huh.NewText().Title("Description").Value(&m.fields.description),
			),
		)
	case companiesStateEdit:
		c := m.selected()
		if c == nil {
			return m, nil
		}

		m.fields.code = c.Code
		m.fields.name = c.Name
		m.fields.description = c.Description

		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Name").Value(&m.fields.name).Validate(notBlank("name")),
				huh.NewText().Title("Description").Value(&m.fields.description),
			),
		)
	case companiesStateDelete:
		c := m.selected()
		if c == nil {
			return m, nil
		}

		m.fields.code = c.Code
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete %s?", c.Name)).
					Description("Companies that still have invoices cannot be deleted.").
					Value(&m.fields.confirm),
			),
		)
	}

	m.form = m.form.WithWidth(45).WithShowHelp(false)
	m.state = state
	m.table.Blur()

	return m, m.form.Init()
}

func (m CompaniesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = companiesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m CompaniesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading companies...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(r to retry, Esc to back)", m.err))
	}

	content := framed(m.table.View())

	switch {
	case m.form != nil:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(m.formTitle(), m.form.View()))
	case m.detail != nil:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(m.detail.Company.Name, m.detailView()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content + "\n" + m.ShortHelp())
}

func (m CompaniesModel) formTitle() string {
	switch m.state {
	case companiesStateCreate:
		return "New Company"
	case companiesStateEdit:
		return "Edit " + m.fields.code
	case companiesStateDelete:
		return "Delete " + m.fields.code
	}

	return ""
}

func (m CompaniesModel) detailView() string {
	d := m.detail

	ids := make([]string, len(d.InvoiceIDs))
	for i, id := range d.InvoiceIDs {
		ids[i] = "#" + strconv.FormatInt(id, 10)
	}

	invoices := "none"
	if len(ids) > 0 {
		invoices = strings.Join(ids, ", ")
	}

	return fmt.Sprintf("Code: %s\n%s\n\nInvoices: %s", d.Company.Code, d.Company.Description, invoices)
}

func (m CompaniesModel) selected() *company.Company {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.companies) {
		return nil
	}

	return m.companies[idx]
}

func (m *CompaniesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.companies))
	for _, c := range m.companies {
		rows = append(rows, table.Row{c.Code, c.Name})
	}

	m.table.SetRows(rows)
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}

		return nil
	}
}

// Messages

type loadCompaniesMsg struct {
	companies []*company.Company
	err       error
}

func (m CompaniesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		companies, err := m.companyService.List(ctx)

		return loadCompaniesMsg{companies: companies, err: err}
	}
}

type companyDetailMsg struct {
	detail *invoice.CompanyInvoices
	err    error
}

func (m CompaniesModel) detailCmd(code string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		detail, err := m.invoiceService.CompanyWithInvoices(ctx, code)

		return companyDetailMsg{detail: detail, err: err}
	}
}

type companySavedMsg struct {
	status string
	err    error
}

func (m CompaniesModel) saveCmd() tea.Cmd {
	state := m.state
	f := *m.fields

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		switch state {
		case companiesStateCreate:
			_, err := m.companyService.Create(ctx, company.CreateParams{
				Code:        strings.TrimSpace(f.code),
				Name:        strings.TrimSpace(f.name),
				Description: f.description,
			})

			return companySavedMsg{status: "Created " + f.code, err: err}
		case companiesStateEdit:
			_, err := m.companyService.Update(ctx, f.code, company.UpdateParams{
				Name:        strings.TrimSpace(f.name),
				Description: f.description,
			})

			return companySavedMsg{status: "Updated " + f.code, err: err}
		case companiesStateDelete:
			if !f.confirm {
				return companySavedMsg{}
			}

			err := m.companyService.Delete(ctx, f.code)

			return companySavedMsg{status: "Deleted " + f.code, err: err}
		}

		return companySavedMsg{err: errors.New("nothing to save")}
	}
}
