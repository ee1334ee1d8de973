package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/timetrack/internal/cli"
	"github.com/alexanderramin/timetrack/internal/cli/formatter"
	"github.com/alexanderramin/timetrack/internal/config"
	"github.com/alexanderramin/timetrack/internal/db"
	"github.com/alexanderramin/timetrack/internal/repository"
	"github.com/alexanderramin/timetrack/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sessionRepo := repository.NewSQLiteSessionRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	leaveRepo := repository.NewSQLiteLeaveRepo(database)
	holidayRepo := repository.NewSQLiteHolidayRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.Log.UseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Sessions: service.NewSessionService(sessionRepo, uow, nil, observers...),
		Tasks:    service.NewTaskService(taskRepo, sessionRepo, uow, nil, observers...),
		Summary:  service.NewSummaryService(sessionRepo, leaveRepo, holidayRepo, cfg, observers...),
		Leave:    service.NewLeaveService(leaveRepo, cfg, uow, nil, observers...),
		Holidays: service.NewHolidayService(holidayRepo, uow, observers...),
		Settings: cfg,
		Account:  cfg.Account,
	}

	// Pipes and redirects get plain text.
	if fd := os.Stdout.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		formatter.DisableColor()
	}

	return cli.NewRootCmd(app).Execute()
}
