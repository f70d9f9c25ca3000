package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/biztime/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/biztime/internal/company"
	companyStore "github.com/MrJamesThe3rd/biztime/internal/company/store"
	"github.com/MrJamesThe3rd/biztime/internal/config"
	"github.com/MrJamesThe3rd/biztime/internal/database"
	"github.com/MrJamesThe3rd/biztime/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/biztime/internal/invoice/store"
)

type model struct {
	appName        string
	companyService *company.Service
	invoiceService *invoice.Service

	currentView View

	companiesView view.CompaniesModel
	invoicesView  view.InvoicesModel
}

type View int

const (
	ViewMenu      View = 0
	ViewCompanies View = 1
	ViewInvoices  View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString(), database.PoolConfig{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	companySvc := company.NewService(companyStore.New(db))
	invoiceSvc := invoice.NewService(invoiceStore.New(db), companySvc)

	return model{
		appName:        cfg.App.Name,
		companyService: companySvc,
		invoiceService: invoiceSvc,
		currentView:    ViewMenu,
		companiesView:  view.NewCompaniesModel(companySvc, invoiceSvc),
		invoicesView:   view.NewInvoicesModel(invoiceSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewCompanies
				m.companiesView = view.NewCompaniesModel(m.companyService, m.invoiceService)

				return m, m.companiesView.Init()
			case "2":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.invoiceService)

				return m, m.invoicesView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewCompanies:
		var newModel tea.Model
		newModel, cmd = m.companiesView.Update(msg)
		m.companiesView = newModel.(view.CompaniesModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Companies\n" +
				"2. Invoices\n\n" +
				"q. Quit",
		)
	case ViewCompanies:
		return m.companiesView.View()
	case ViewInvoices:
		return m.invoicesView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
