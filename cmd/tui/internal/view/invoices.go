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
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStateCreate
	invoicesStateEdit
	invoicesStateDelete
)

type invoiceFields struct {
	id       int64
	compCode string
	amount   string
	confirm  bool
}

type InvoicesModel struct {
	CommonModel
	invoiceService *invoice.Service

	state    invoicesState
	table    table.Model
	invoices []*invoice.Invoice
	detail   *invoice.Invoice
	form     *huh.Form
	fields   *invoiceFields

	loading bool
	err     error
	status  string
}

func NewInvoicesModel(invoiceSvc *invoice.Service) InvoicesModel {
	t := newTable([]table.Column{
		{Title: "ID", Width: 8},
		{Title: "Company", Width: 20},
	})

	return InvoicesModel{
		invoiceService: invoiceSvc,
		table:          t,
		fields:         &invoiceFields{},
		loading:        true,
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }

func (m InvoicesModel) ShortHelp() string {
	if m.state != invoicesStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Enter: details | n: new | e: edit amount | x: delete | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.invoices = msg.invoices
		m.refreshTable()

		return m, nil

	case invoiceDetailMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.detail = msg.invoice

		return m, nil

	case invoiceSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = invoicesStateBrowse
		m.form = nil
		m.detail = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == invoicesStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if inv := m.selected(); inv != nil {
				return m, m.detailCmd(inv.ID)
			}

			return m, nil
		case "n":
			return m.enterForm(invoicesStateCreate)
		case "e":
			return m.enterForm(invoicesStateEdit)
		case "x":
			return m.enterForm(invoicesStateDelete)
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

func (m InvoicesModel) enterForm(state invoicesState) (tea.Model, tea.Cmd) {
	*m.fields = invoiceFields{}

	if state == invoicesStateCreate {
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Company code").Value(&m.fields.compCode).Validate(notBlank("company code")),
				huh.NewInput().Title("Amount").Placeholder("0.00").Value(&m.fields.amount).Validate(validAmount),
			),
		)
	} else {
		inv := m.selected()
		if inv == nil {
			return m, nil
		}

		m.fields.id = inv.ID

		if state == invoicesStateEdit {
			m.form = huh.NewForm(
				huh.NewGroup(
					huh.NewInput().Title("Amount").Placeholder("0.00").Value(&m.fields.amount).Validate(validAmount),
				),
			)
		} else {
			m.form = huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().Title(fmt.Sprintf("Delete invoice #%d?", inv.ID)).Value(&m.fields.confirm),
				),
			)
		}
	}

	m.form = m.form.WithWidth(45).WithShowHelp(false)
	m.state = state
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = invoicesStateBrowse
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

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(r to retry, Esc to back)", m.err))
	}

	content := framed(m.table.View())

	switch {
	case m.form != nil:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(m.formTitle(), m.form.View()))
	case m.detail != nil:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content,
			panel(fmt.Sprintf("Invoice #%d", m.detail.ID), invoiceDetailView(m.detail)))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content + "\n" + m.ShortHelp())
}

func (m InvoicesModel) formTitle() string {
	switch m.state {
	case invoicesStateCreate:
		return "New Invoice"
	case invoicesStateEdit:
		return fmt.Sprintf("Edit invoice #%d", m.fields.id)
	case invoicesStateDelete:
		return fmt.Sprintf("Delete invoice #%d", m.fields.id)
	}

	return ""
}

func invoiceDetailView(inv *invoice.Invoice) string {
	comp := "(company no longer exists)"
	if inv.Company != nil {
		comp = fmt.Sprintf("%s (%s)", inv.Company.Name, inv.Company.Code)
	}

	return fmt.Sprintf(
		"Company: %s\nAmount:  %s\nStatus:  %s\nAdded:   %s",
		comp,
		FormatAmount(inv.Amount),
		FormatPaid(inv.Paid, inv.PaidDate),
		FormatDate(inv.AddDate),
	)
}

func validAmount(s string) error {
	amt, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return errors.New("amount must be a number")
	}

	if !amt.IsPositive() {
		return errors.New("amount must be greater than zero")
	}

	return nil
}

func (m InvoicesModel) selected() *invoice.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.invoices) {
		return nil
	}

	return m.invoices[idx]
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invoices))
	for _, inv := range m.invoices {
		rows = append(rows, table.Row{strconv.FormatInt(inv.ID, 10), inv.CompCode})
	}

	m.table.SetRows(rows)
}

// Messages

type loadInvoicesMsg struct {
	invoices []*invoice.Invoice
	err      error
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invoices, err := m.invoiceService.List(ctx)

		return loadInvoicesMsg{invoices: invoices, err: err}
	}
}

type invoiceDetailMsg struct {
	invoice *invoice.Invoice
	err     error
}

func (m InvoicesModel) detailCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		inv, err := m.invoiceService.Get(ctx, id)

		return invoiceDetailMsg{invoice: inv, err: err}
	}
}

type invoiceSavedMsg struct {
	status string
	err    error
}

func (m InvoicesModel) saveCmd() tea.Cmd {
	state := m.state
	f := *m.fields

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		switch state {
		case invoicesStateCreate:
			amt, err := decimal.NewFromString(strings.TrimSpace(f.amount))
			if err != nil {
				return invoiceSavedMsg{err: err}
			}

			inv, err := m.invoiceService.Create(ctx, invoice.CreateParams{
				CompCode: strings.TrimSpace(f.compCode),
				Amount:   amt,
			})
			if err != nil {
				return invoiceSavedMsg{err: err}
			}

			return invoiceSavedMsg{status: fmt.Sprintf("Created invoice #%d", inv.ID)}
		case invoicesStateEdit:
			amt, err := decimal.NewFromString(strings.TrimSpace(f.amount))
			if err != nil {
				return invoiceSavedMsg{err: err}
			}

			_, err = m.invoiceService.Update(ctx, f.id, invoice.UpdateParams{Amount: amt})

			return invoiceSavedMsg{status: fmt.Sprintf("Updated invoice #%d", f.id), err: err}
		case invoicesStateDelete:
			if !f.confirm {
				return invoiceSavedMsg{}
			}

			err := m.invoiceService.Delete(ctx, f.id)

			return invoiceSavedMsg{status: fmt.Sprintf("Deleted invoice #%d", f.id), err: err}
		}

		return invoiceSavedMsg{err: errors.New("nothing to save")}
	}
}
