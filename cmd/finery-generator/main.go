package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/zombor/finery-generator/internal/listing"
	"github.com/zombor/finery-generator/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("finery-generator")
	var (
		port         = fs.IntLong("port", 8080, "HTTP server port")
		templatePath = fs.StringLong("template", "", "HTML description template with {{Title}}, {{ImageSrc}} and {{BodyHTML}} (built-in template if empty)")
		scannerType  = fs.StringLong("scanner", "tesseract", "OCR engine: 'tesseract', 'gemini', 'ollama' or 'vision'")
		ocrLang      = fs.StringLong("ocr-lang", "eng", "Tesseract languages joined with '+', e.g. eng+deu")
		ocrGrayscale = fs.BoolLong("ocr-grayscale", "Convert images to grayscale before tesseract OCR")
		previewWidth = fs.IntLong("preview-width", 0, "Max width in pixels of the inlined main image (0 keeps full size)")
		maxUploadMB  = fs.IntLong("max-upload-mb", 50, "Maximum size of one submitted form in megabytes")
		geminiKey    = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel  = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		ollamaURL    = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel  = fs.StringLong("ollama-model", "llava", "Ollama vision model name (e.g., llava, llama3.2-vision, qwen2.5vl)")
		authUser     = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass     = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		_            = fs.StringLong("config", "", "Config file with one 'flag value' per line (optional)")
		showVersion  = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("FINERY"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize template source
	var templates listing.TemplateSource = listing.EmbeddedTemplate{}
	if *templatePath != "" {
		slog.Info("Loading description template...", "path", *templatePath)
		fileTemplate, err := listing.NewFileTemplate(*templatePath)
		if err != nil {
			slog.Error("Failed to open template", "error", err)
			os.Exit(1)
		}
		templates = fileTemplate
	}

	// Initialize scanner based on type
	var scanner scanning.Scanner
	switch *scannerType {
	case "tesseract":
		langs := strings.Split(*ocrLang, "+")
		slog.Info("Initializing Tesseract scanner...", "languages", langs, "grayscale", *ocrGrayscale)
		scanner = scanning.NewTesseract(langs, *ocrGrayscale)
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}

		slog.Info("Initializing Gemini scanner...", "model", *geminiModel)
		gemini, err := scanning.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
		scanner = gemini
	case "ollama":
		slog.Info("Initializing Ollama scanner...", "url", *ollamaURL, "model", *ollamaModel)
		ollama, err := scanning.NewOllama(*ollamaURL, *ollamaModel)
		if err != nil {
			slog.Error("Failed to initialize Ollama", "error", err)
			os.Exit(1)
		}
		scanner = ollama
	case "vision":
		slog.Info("Initializing Cloud Vision scanner...")
		vision, err := scanning.NewVision(context.Background())
		if err != nil {
			slog.Error("Failed to initialize Cloud Vision", "error", err)
			os.Exit(1)
		}
		scanner = vision
	default:
		slog.Error("Invalid scanner type", "type", *scannerType, "valid", "tesseract, gemini, ollama or vision")
		os.Exit(1)
	}
	defer scanner.Close()

	// Initialize service
	listingService := listing.NewService(scanner, templates, *previewWidth)

	// Initialize server
	basicAuth := listing.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := listing.NewServer(listingService, basicAuth)
	server.SetMaxUploadSize(int64(*maxUploadMB) << 20)

	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
