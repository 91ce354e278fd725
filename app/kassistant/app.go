package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	formatter "github.com/bluexlab/logrus-formatter"
	otlp_util "github.com/bluexlab/otlp-util-go"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gobuffalo/pop"
	"github.com/gobuffalo/pop/logging"
	"github.com/impressdesigns/kassistant/pkg/config"
	"github.com/impressdesigns/kassistant/pkg/fedex"
	"github.com/impressdesigns/kassistant/pkg/kerp"
	"github.com/impressdesigns/kassistant/pkg/ship_server/api"
	"github.com/impressdesigns/kassistant/pkg/ship_server/history"
	"github.com/impressdesigns/kassistant/pkg/ship_server/label"
	"github.com/impressdesigns/kassistant/pkg/ship_server/model"
	"github.com/impressdesigns/kassistant/pkg/ship_server/storage/postgres"
	"github.com/impressdesigns/kassistant/pkg/util"
	"github.com/sirupsen/logrus"
)

const appName string = "kassistant"

type CLI struct {
	Server struct {
	} `cmd:"" help:"Run the server"`
	Migrate struct {
		Path string `short:"p" long:"path" help:"Path to the migration files" type:"existingdir" default:"migrations"`
	} `cmd:"" help:"Migrate the database"`
	RunLabels struct {
		Cartons           string `short:"f" long:"cartons" help:"File with one carton number per line" type:"existingfile" required:""`
		Service           string `long:"service" help:"Carrier service type" default:"FEDEX_GROUND"`
		Billing           string `long:"billing" help:"Payment type" default:"SENDER"`
		ThirdPartyAccount string `long:"third-party-account" help:"Account billed when billing is THIRD_PARTY"`
		AirAuth           string `long:"air-auth" help:"Air authorization number used as the customer reference"`
		Saturday          bool   `long:"saturday" help:"Request Saturday delivery"`
		ShipDate          string `long:"ship-date" help:"Ship date (YYYY-MM-DD). Defaults to today"`
	} `cmd:"" help:"Create labels for the cartons in a file and print the label document"`
	ExportHistory struct {
		Date   string `long:"date" help:"Day to export (YYYY-MM-DD)" required:""`
		Output string `short:"o" long:"output" help:"Output file. Defaults to shipment_history_{date}.xlsx"`
	} `cmd:"" help:"Export one day of shipment history as an Excel workbook"`
	Config string `short:"c" long:"config" help:"Path to the configuration file" type:"existingfile" default:"config.yaml"`
}

type Config struct {
	Database util.PostgresDatabaseConfig `yaml:"database"`
	Server   struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	FedEx fedex.Config `yaml:"fedex"`
	KERP  kerp.Config  `yaml:"kerp"`
	App   struct {
		TimeZone string `yaml:"time_zone"`
	} `yaml:"app"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

func (c Config) Validate() error {
	return validation.Errors{
		"database": validation.ValidateStruct(&c.Database,
			validation.Field(&c.Database.Host, validation.Required),
			validation.Field(&c.Database.Port, validation.Required),
			validation.Field(&c.Database.Database, validation.Required),
		),
		"fedex": validation.ValidateStruct(&c.FedEx,
			validation.Field(&c.FedEx.ClientID, validation.Required),
			validation.Field(&c.FedEx.ClientSecret, validation.Required),
			validation.Field(&c.FedEx.AccountNumber, validation.Required),
			validation.Field(&c.FedEx.BaseURL, is.URL),
		),
		"kerp": validation.ValidateStruct(&c.KERP,
			validation.Field(&c.KERP.BaseURL, validation.Required, is.URL),
		),
	}.Filter()
}

type App struct{}

func (a *App) Run() {
	formatter.InitLogger()

	var cli CLI
	ctx := kong.Parse(&cli, kong.UsageOnError())
	switch ctx.Command() {
	case "server":
		a.runServer(cli)
	case "migrate":
		a.runMigrate(cli)
	case "run-labels":
		a.runLabels(cli)
	case "export-history":
		a.runExportHistory(cli)
	default:
	}
}

func loadConfig(cli CLI) Config {
	var appConfig Config
	if err := config.FromFile(cli.Config, &appConfig); err != nil {
		logrus.Errorf("failed to load config: %v", err)
		os.Exit(128)
	}
	return appConfig
}

// initOTLP starts the exporter when an endpoint is configured. The returned func flushes it.
func initOTLP(ctx context.Context, endpoint string) func() {
	if endpoint == "" {
		return func() {}
	}

	exporter, err := otlp_util.InitExporter(
		otlp_util.WithContext(ctx),
		otlp_util.WithEndPoint(endpoint),
		otlp_util.WithServiceName(appName),
		otlp_util.WithInSecure(),
		otlp_util.WithErrorHandler(func(err error) {
			logrus.Warnf("OTLP error: %v", err)
		}),
	)
	if err != nil {
		logrus.Errorf("failed to initialize OTLP exporter: %v", err)
		os.Exit(128)
	}
	return func() { _ = exporter.Shutdown(ctx) }
}

func (a *App) runServer(cli CLI) {
	ctx := context.Background()
	appConfig := loadConfig(cli)
	defer initOTLP(ctx, appConfig.OTLPEndpoint)()

	apiConfig := api.APIConfig{
		Database:     appConfig.Database,
		LocalAddress: net.JoinHostPort(appConfig.Server.Host, strconv.Itoa(appConfig.Server.Port)),
		FedEx:        appConfig.FedEx,
		KERP:         appConfig.KERP,
		TimeZone:     appConfig.App.TimeZone,
	}
	apiServer, err := api.NewAPIWithConfig(apiConfig)
	if err != nil {
		logrus.Errorf("failed to create API server: %v", err)
		os.Exit(128)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg := &sync.WaitGroup{}
	wg.Add(1)
	go func(wg *sync.WaitGroup) {
		defer wg.Done()

		logrus.Infof("%s listening on %s", appName, apiConfig.LocalAddress)
		if err := apiServer.Run(); err != nil {
			logrus.Errorf("failed to run API server: %v", err)
			os.Exit(1)
		}
	}(wg)

	// listen for the stop signal
	<-ctx.Done()

	// Restore default behavior on the signals we are listening to
	stop()
	logrus.Info("shutting down gracefully, press Ctrl+C again to force")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Close(ctx); err != nil {
		logrus.Warnf("failed to close API server: %v", err)
		os.Exit(1)
	}

	wg.Wait()
}

func (a *App) runMigrate(cli CLI) {
	appConfig := loadConfig(cli)

	// set up the logger
	pop.SetLogger(func(lvl logging.Level, s string, args ...interface{}) {
		switch lvl {
		case logging.Debug:
			logrus.Debugf(s, args...)
		case logging.Info:
			logrus.Infof(s, args...)
		case logging.Warn:
			logrus.Warnf(s, args...)
		case logging.Error:
			logrus.Errorf(s, args...)
		case logging.SQL:
			// Do nothing
		}
	})

	cd := pop.ConnectionDetails{
		Dialect:  "postgres",
		Database: appConfig.Database.Database,
		Host:     appConfig.Database.Host,
		Port:     strconv.Itoa(appConfig.Database.Port),
		User:     appConfig.Database.User,
		Password: appConfig.Database.Password,
	}
	if appConfig.Database.SSLMode != "" {
		cd.Options = map[string]string{"sslmode": appConfig.Database.SSLMode}
	}
	conn, err := pop.NewConnection(&cd)
	if err != nil {
		logrus.Errorf("failed to create connection: %v", err)
		os.Exit(128)
	}

	// create the database if it doesn't exist
	if err = conn.Dialect.CreateDB(); err != nil {
		logrus.Warnf("failed to create database: %v", err)
	}

	migrator, err := pop.NewFileMigrator(cli.Migrate.Path, conn)
	if err != nil {
		logrus.Errorf("failed to create migrator: %v", err)
		os.Exit(128)
	}
	// The schema dump needs pg_dump, which is not shipped with the binary.
	migrator.SchemaPath = ""

	if err = migrator.Up(); err != nil {
		logrus.Errorf("failed to migrate: %v", err)
		os.Exit(1)
	}
}

func (a *App) runLabels(cli CLI) {
	ctx := context.Background()
	appConfig := loadConfig(cli)
	defer initOTLP(ctx, appConfig.OTLPEndpoint)()

	opts := cli.RunLabels
	cartons, err := os.ReadFile(opts.Cartons)
	if err != nil {
		logrus.Errorf("failed to read cartons: %v", err)
		os.Exit(128)
	}
	req := label.RunLabelsRequest{
		CartonNumbers:           string(cartons),
		Service:                 fedex.ServiceType(opts.Service),
		Billing:                 fedex.PaymentType(opts.Billing),
		ThirdPartyAccountNumber: opts.ThirdPartyAccount,
		AirAuth:                 opts.AirAuth,
		SaturdayDelivery:        opts.Saturday,
	}
	if opts.ShipDate != "" {
		if req.ShipDate, err = model.NewDateFromString(opts.ShipDate); err != nil {
			logrus.Errorf("invalid ship date %q: %v", opts.ShipDate, err)
			os.Exit(128)
		}
	}

	loc, err := api.LoadLocation(appConfig.App.TimeZone)
	if err != nil {
		logrus.Errorf("failed to load time zone: %v", err)
		os.Exit(128)
	}
	dbStorage, err := postgres.NewStorageWithConfig(appConfig.Database)
	if err != nil {
		logrus.Errorf("failed to create database connection: %v", err)
		os.Exit(128)
	}
	defer dbStorage.Close()

	labelCtrl := label.NewLabelController(
		dbStorage,
		fedex.NewClientWithConfig(appConfig.FedEx),
		kerp.NewClientWithConfig(appConfig.KERP),
		label.WithAccountNumber(appConfig.FedEx.AccountNumber),
		label.WithLocation(loc),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := labelCtrl.RunLabels(ctx, time.Now().Unix(), req)
	if err != nil {
		logrus.Errorf("failed to run labels: %v", err)
		os.Exit(1)
	}
	fmt.Fprint(os.Stdout, result)
}

func (a *App) runExportHistory(cli CLI) {
	ctx := context.Background()
	appConfig := loadConfig(cli)

	opts := cli.ExportHistory
	day, err := model.NewDateFromString(opts.Date)
	if err != nil {
		logrus.Errorf("invalid date %q: %v", opts.Date, err)
		os.Exit(128)
	}
	output := opts.Output
	if output == "" {
		output = fmt.Sprintf("shipment_history_%s.xlsx", day.String())
	}

	loc, err := api.LoadLocation(appConfig.App.TimeZone)
	if err != nil {
		logrus.Errorf("failed to load time zone: %v", err)
		os.Exit(128)
	}
	dbStorage, err := postgres.NewStorageWithConfig(appConfig.Database)
	if err != nil {
		logrus.Errorf("failed to create database connection: %v", err)
		os.Exit(128)
	}
	defer dbStorage.Close()

	workbook, err := history.NewHistoryController(dbStorage, history.WithLocation(loc)).ExportExcel(ctx, day)
	if err != nil {
		logrus.Errorf("failed to export history: %v", err)
		os.Exit(1)
	}
	if err := os.WriteFile(output, workbook, 0o644); err != nil {
		logrus.Errorf("failed to write %s: %v", output, err)
		os.Exit(1)
	}
	logrus.Infof("wrote %s", output)
}
