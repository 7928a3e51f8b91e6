package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"localesync/internal/application"
	"localesync/internal/config"
	"localesync/internal/domain"
	"localesync/internal/domain/entities"
	"localesync/internal/infrastructure/filesystem"
	"localesync/internal/infrastructure/i18n"
	"localesync/pkg/logger"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// options holds flag values; empty strings leave the environment's value.
type options struct {
	i18nDir    string
	template   string
	nodesDir   string
	mappings   string
	baseLocale string
	logEnv     string
	locales    []string
	coverage   bool
	verbose    bool
}

// Run parses args, synchronizes the locales and returns the process exit
// code. Diagnostics go to stderr.
func Run(ctx context.Context, args []string, stderr io.Writer) int {
	var opts options
	flagSet := pflag.NewFlagSet("localesync", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.i18nDir, "i18n-dir", "", "directory holding the template and locale documents (env I18N_DIR)")
	flagSet.StringVar(&opts.template, "template", "", "template file name or path (env TEMPLATE_FILE)")
	flagSet.StringVar(&opts.nodesDir, "nodes-dir", "", "root of the node packages to write into (env NODES_DIR)")
	flagSet.StringVar(&opts.mappings, "mappings", "", "TOML file overriding the locale and component tables (env MAPPINGS_FILE)")
	flagSet.StringVar(&opts.baseLocale, "base-locale", "", "locale the template is written in (env BASE_LOCALE)")
	flagSet.StringVar(&opts.logEnv, "log-env", "", "\"production\" for JSON logs (env LOG_ENV)")
	flagSet.StringSliceVar(&opts.locales, "locale", nil, "only synchronize these locales (repeatable)")
	flagSet.BoolVar(&opts.coverage, "coverage", false, "report per-locale translation coverage")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log every written artifact")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		fmt.Fprintf(stderr, "unexpected argument: %s\n", rest[0])
		return ExitUsage
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	}

	log, err := logger.New(cfg.LogEnv, opts.verbose)
	if err != nil {
		fmt.Fprintf(stderr, "error: build logger: %v\n", err)
		return ExitFailure
	}
	defer log.Sync()

	if err := runSync(ctx, cfg, opts, log); err != nil {
		log.Error("synchronization failed", zap.Error(err))
		if errors.Is(err, domain.ErrInvalidLocale) {
			return ExitUsage
		}
		return ExitFailure
	}
	return ExitOK
}

func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{opts.i18nDir, &cfg.I18nDir},
		{opts.template, &cfg.TemplateFile},
		{opts.nodesDir, &cfg.NodesDir},
		{opts.mappings, &cfg.MappingsFile},
		{opts.baseLocale, &cfg.BaseLocale},
		{opts.logEnv, &cfg.LogEnv},
	}
	changed := false
	for _, o := range overrides {
		if o.flag != "" {
			*o.dst = o.flag
			changed = true
		}
	}
	if changed {
		if err := cfg.Finalize(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func runSync(ctx context.Context, cfg *config.Config, opts options, log *zap.Logger) error {
	serviceOpts := []application.Option{application.WithLocales(opts.locales...)}
	if opts.coverage {
		auditor, err := i18n.NewCoverageAuditor(cfg.BaseLocale, cfg.Mappings.HelpKey, log)
		if err != nil {
			return err
		}
		serviceOpts = append(serviceOpts, application.WithAuditor(auditor))
	}

	service := application.NewSyncService(
		filesystem.NewTemplateStore(cfg.TemplatePath(), log),
		filesystem.NewLocaleSource(cfg.I18nDir),
		filesystem.NewEmitter(cfg.NodesDir, cfg.NodeDirPrefix, cfg.LocalesSubdir, log),
		cfg.Mappings,
		log,
		serviceOpts...,
	)

	report, err := service.Run(ctx)
	if err != nil {
		return err
	}

	fallbacks := 0
	for _, l := range report.Locales {
		if l.Source == entities.SourceTemplate {
			fallbacks++
		}
	}
	log.Info("synchronization finished",
		zap.Int("locales", len(report.Locales)),
		zap.Int("template_fallbacks", fallbacks),
		zap.Int("artifacts", report.Artifacts()),
	)
	return nil
}
