package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"neuron-forge/internal/config"
	"neuron-forge/internal/dataset"
	"neuron-forge/internal/history"
	"neuron-forge/internal/model"
	"neuron-forge/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (defaults apply when empty)")
	epochs := flag.Int("epochs", 0, "Number of training epochs")
	lr := flag.Float64("lr", 0, "Learning rate")
	seed := flag.Int64("seed", 0, "PRNG seed for initialisation and shuffling (config value when unset; 0 is a valid seed)")
	logEvery := flag.Int("log-every", 0, "Log loss every N epochs")
	shuffle := flag.Bool("shuffle", false, "Shuffle sample order every epoch")
	dataPath := flag.String("data", "", "CSV dataset (name,weight,height,label); built-in set when empty")
	historyPath := flag.String("history", "", "SQLite file to record loss observations")
	checkpointPath := flag.String("checkpoint", "", "Write trained parameters to this JSON file")
	predict := flag.String("predict", "Emily:128:63,Frank:155:68", "Comma-separated name:weight:height to classify after training")

	flag.Parse()

	var seedOverride *int64
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedOverride = seed
		}
	})

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	cfg.ApplyOverrides(config.Overrides{
		Epochs:         *epochs,
		LearningRate:   *lr,
		Seed:           seedOverride,
		LogEvery:       *logEvery,
		Shuffle:        *shuffle,
		DataPath:       *dataPath,
		HistoryPath:    *historyPath,
		CheckpointPath: *checkpointPath,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	samples := dataset.Default()
	if cfg.DataPath != "" {
		var err error
		samples, err = dataset.LoadCSV(cfg.DataPath)
		if err != nil {
			log.Fatalf("load dataset: %v", err)
		}
	}
	log.Printf("samples=%d epochs=%d lr=%g seed=%d shuffle=%t", len(samples), cfg.Epochs, cfg.LearningRate, cfg.Seed, cfg.Shuffle)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCfg := trainer.RunConfig{
		Epochs:       cfg.Epochs,
		LearningRate: cfg.LearningRate,
		LogEvery:     cfg.LogEvery,
		Shuffle:      cfg.Shuffle,
		Seed:         cfg.Seed,
		Observers:    []trainer.Observer{trainer.LogObserver(nil)},
	}

	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			log.Fatalf("open history: %v", err)
		}
		defer store.Close()
		run, err := store.BeginRun(ctx, history.Run{Epochs: cfg.Epochs, LearningRate: cfg.LearningRate, Seed: cfg.Seed})
		if err != nil {
			log.Fatalf("begin run: %v", err)
		}
		log.Printf("history=%s run_id=%d", cfg.HistoryPath, run.ID)
		runCfg.Observers = append(runCfg.Observers, store.Observer(ctx, run.ID))
	}

	net := model.New(rand.New(rand.NewSource(cfg.Seed)))
	res, err := trainer.Run(ctx, runCfg, net, samples)
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}
	log.Printf("done epochs=%d initial_loss=%.4f final_loss=%.4f elapsed=%s", res.Epochs, res.InitialLoss, res.FinalLoss, res.Elapsed)

	if cfg.CheckpointPath != "" {
		if err := model.SaveCheckpoint(cfg.CheckpointPath, net); err != nil {
			log.Fatalf("save checkpoint: %v", err)
		}
		log.Printf("checkpoint=%s", cfg.CheckpointPath)
	}

	for _, entry := range strings.Split(*predict, ",") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		person, err := dataset.ParsePerson(entry)
		if err != nil {
			log.Fatalf("predict: %v", err)
		}
		out, err := net.FeedforwardVec(person.Features)
		if err != nil {
			log.Fatalf("predict %s: %v", person.Name, err)
		}
		log.Printf("name=%s prediction=%.3f", person.Name, out)
	}
}
