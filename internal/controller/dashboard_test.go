package controller

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/obsidiancapital/investor-portal/internal/domain/models"
	"github.com/obsidiancapital/investor-portal/internal/loader"
)

func TestDashboardRefresh(t *testing.T) {
	summary := models.DashboardSummary{TotalInvestment: 250000, TotalProfit: 62500}
	c := NewDashboard(func(context.Context) loader.Result[models.DashboardSummary] {
		return loader.Result[models.DashboardSummary]{Data: summary}
	}, nil)

	if got := c.View().State; got != "idle" {
		t.Errorf("initial state = %s, want idle", got)
	}

	c.Refresh(context.Background())

	view := c.View()
	if view.State != "ready" {
		t.Errorf("state = %s, want ready", view.State)
	}
	if view.TotalInvestment != 250000 || view.TotalProfit != 62500 {
		t.Errorf("summary = %+v, want fetched totals", view.DashboardSummary)
	}
}

func TestDashboardOutOfOrderCompletion(t *testing.T) {
	var calls atomic.Int32
	entered := make(chan struct{})
	release := [2]chan models.DashboardSummary{
		make(chan models.DashboardSummary),
		make(chan models.DashboardSummary),
	}
	c := NewDashboard(func(context.Context) loader.Result[models.DashboardSummary] {
		i := int(calls.Add(1)) - 1
		entered <- struct{}{}
		return loader.Result[models.DashboardSummary]{Data: <-release[i]}
	}, nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.Refresh(context.Background())
	}()
	<-entered
	go func() {
		defer wg.Done()
		c.Refresh(context.Background())
	}()
	<-entered

	release[1] <- models.DashboardSummary{TotalInvestment: 2}
	release[0] <- models.DashboardSummary{TotalInvestment: 1}
	wg.Wait()

	view := c.View()
	if view.TotalInvestment != 2 {
		t.Errorf("TotalInvestment = %v, want the later-initiated response to win", view.TotalInvestment)
	}
	if view.State != "ready" {
		t.Errorf("state = %s, want ready", view.State)
	}
}

func TestDashboardSelectToggle(t *testing.T) {
	c := NewDashboard(func(context.Context) loader.Result[models.DashboardSummary] {
		return loader.Result[models.DashboardSummary]{}
	}, nil)

	c.Select(3)
	if got := c.View().SelectedTransaction; got != 3 {
		t.Errorf("SelectedTransaction = %d, want 3", got)
	}
	c.Select(3)
	if got := c.View().SelectedTransaction; got != 0 {
		t.Errorf("SelectedTransaction after toggle = %d, want cleared", got)
	}
}
