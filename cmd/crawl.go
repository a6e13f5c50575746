package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brogergvhs/noveld/internal/config"
	"github.com/brogergvhs/noveld/internal/crawler"
	"github.com/brogergvhs/noveld/internal/downloader"
	"github.com/brogergvhs/noveld/internal/epub"
	"github.com/brogergvhs/noveld/internal/fetch"
	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/brogergvhs/noveld/internal/providers/generic"
	"github.com/brogergvhs/noveld/internal/ui"
	"github.com/brogergvhs/noveld/internal/util"

	"github.com/spf13/cobra"
)

var (
	flagURL      string
	flagOutput   string
	flagMaxPages int
	flagBaseURL  string
	flagLanguage string
	flagTimeout  time.Duration

	flagForce       bool
	flagNoProgress  bool
	flagReadability bool
	flagRobots      bool
	flagLogFile     string

	// headers/auth
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
	flagCloudflare bool
)

func init() {
	crawlCmd := &cobra.Command{
		Use:   "crawl",
		Short: "Follow next-chapter links from a start page and save the book as EPUB. Uses the defaults from the selected config, overwritten by CLI flags",
		RunE:  runCrawl,
	}

	crawlCmd.Flags().StringVar(&flagURL, "url", "", "URL of the first chapter page")
	crawlCmd.Flags().StringVar(&flagOutput, "output", "", "output folder for the EPUB file")
	crawlCmd.Flags().IntVar(&flagMaxPages, "max-pages", 0, "fail if the chain is longer than this many pages (0 = no limit)")
	crawlCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "origin prefixed to relative next links (empty disables prefixing)")
	crawlCmd.Flags().StringVar(&flagLanguage, "language", "", "dc:language written to the book")
	crawlCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "per-request timeout (0 = none)")

	crawlCmd.Flags().BoolVar(&flagForce, "force", false, "overwrite an existing book without asking")
	crawlCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "disable the progress spinner")
	crawlCmd.Flags().BoolVar(&flagReadability, "readability", false, "extract content with readability when the content selector matches nothing")
	crawlCmd.Flags().BoolVar(&flagRobots, "respect-robots", false, "skip pages disallowed by robots.txt")
	crawlCmd.Flags().StringVar(&flagLogFile, "log-file", "", "also write the log to this file (rotated)")

	crawlCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	crawlCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	crawlCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	crawlCmd.Flags().BoolVar(&flagCloudflare, "cloudflare", false, "wrap the transport with the Cloudflare bypass")

	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, _ []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig:        flagIgnoreConfig,
		Debug:               flagDebug,
		NoProgress:          flagNoProgress,
		Output:              flagOutput,
		URL:                 flagURL,
		BaseURL:             flagBaseURL,
		BaseURLSet:          cmd.Flags().Changed("base-url"),
		MaxPages:            flagMaxPages,
		Language:            flagLanguage,
		Timeout:             flagTimeout,
		Cookie:              flagCookie,
		CookieFile:          flagCookieFile,
		UserAgent:           flagUserAgent,
		CloudflareBypass:    flagCloudflare,
		ReadabilityFallback: flagReadability,
		RespectRobots:       flagRobots,
		LogFile:             flagLogFile,
	})
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	logSvc.WithFile(cfg.LogFile)
	defer func() {
		_ = logSvc.Close()
	}()

	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}
	if cfg.Debug {
		fmt.Println("Full config:")
		cfg.Print()
		fmt.Println()
	}

	if cfg.DefaultURL == "" {
		return fmt.Errorf("missing --url and no default_url in config")
	}

	userAgent := util.PickUserAgent(cfg.UserAgent)
	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:          cfg.Timeout,
		UserAgent:        userAgent,
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		CloudflareBypass: cfg.CloudflareBypass,
		DebugLogger:      logSvc,
	})
	if err != nil {
		return err
	}

	var fetcher providers.Fetcher = fetch.NewHTTPFetcher(client, cfg.MaxBodyBytes)
	if cfg.RespectRobots {
		fetcher = fetch.NewRobotsFetcher(fetcher, client, userAgent)
	}

	parser := generic.NewParser(generic.Selectors{
		BookTitle:    cfg.Selectors.BookTitle,
		ChapterTitle: cfg.Selectors.ChapterTitle,
		Content:      cfg.Selectors.Content,
	})
	if cfg.ReadabilityFallback {
		parser.WithReadability()
	}

	var progress *ui.CrawlProgress
	if cfg.Progress {
		progress = ui.NewCrawlProgress("Crawling")
	}

	sink := crawler.EventFunc(func(e crawler.Event) {
		switch e.Kind {
		case crawler.EventFailed:
			logSvc.Errorf("%s", e)
		case crawler.EventRevisit:
			logSvc.Warnf("%s", e)
		case crawler.EventFetched:
			logSvc.Infof("%s", e)
			if progress != nil {
				progress.PageDone()
			}
		default:
			logSvc.Infof("%s", e)
		}
	})

	c := crawler.New(
		fetcher,
		parser,
		generic.NewLinkResolver(cfg.BaseURL, cfg.Selectors.SkipClass),
		sink,
		cfg.MaxPages,
	)

	util.SetupInterruptHandler(cfg.Output)

	stats := &ui.Stats{}
	dl := downloader.New(c, epub.NewAssembler(cfg.Language), cfg.Output, logSvc, stats)
	if progress != nil {
		dl.Crawled = func(*crawler.State) { progress.Finish(true) }
	}
	if !flagForce {
		dl.Overwrite = confirmOverwrite
	}

	start := time.Now()
	res, err := dl.Download(context.Background(), cfg.DefaultURL)
	if progress != nil {
		progress.Finish(err == nil)
	}
	if errors.Is(err, downloader.ErrKeepExisting) {
		fmt.Println("Aborted, existing book kept.")
		return nil
	}
	if err != nil {
		if res != nil && res.State != nil && res.State.Status == crawler.Failed {
			// already logged by the event sink
			return reported{err}
		}
		return err
	}

	fmt.Println()
	fmt.Println("Crawl Summary:")
	fmt.Printf("Book:     %s\n", res.BookTitle)
	fmt.Printf("Chapters: %d\n", stats.Chapters.Load())
	fmt.Printf("Pages:    %d\n", stats.Pages.Load())
	fmt.Printf("Size:     %s\n", util.Human(stats.Bytes.Load()))
	fmt.Printf("Time:     %s\n", time.Since(start).Round(time.Second))
	fmt.Printf("\nSaved to %s\n", res.Path)

	return nil
}

func confirmOverwrite(path string) (bool, error) {
	return confirm(fmt.Sprintf("%s already exists. Overwrite", path))
}
