package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/afkummer/mdvsp-colgen/cgengine"
	"github.com/afkummer/mdvsp-colgen/instance"
	"github.com/afkummer/mdvsp-colgen/internal/envcfg"
	"github.com/afkummer/mdvsp-colgen/internal/memstat"
	"github.com/afkummer/mdvsp-colgen/internal/sigint"
	"github.com/afkummer/mdvsp-colgen/master"
	"github.com/afkummer/mdvsp-colgen/master/glpkmaster"
	"github.com/afkummer/mdvsp-colgen/pricing"
	"github.com/afkummer/mdvsp-colgen/pricing/bellman"
	"github.com/afkummer/mdvsp-colgen/pricing/mip"
	"github.com/afkummer/mdvsp-colgen/pricing/spfa"
	"github.com/afkummer/mdvsp-colgen/tcg"
)

type rootFlags struct {
	instancePath string
	method       string
	masterName   string
	pricingName  string
	maxPaths     int
	importCols   string
	exportCols   string
	workers      int
	seed         int64
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "mdvsp-colgen",
		Short:         "MDVSP solver: column generation with a truncated-CG primal heuristic",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("max-paths") && flags.maxPaths <= 0 {
				return fmt.Errorf("--max-paths must be at least 1, got %d", flags.maxPaths)
			}
			return run(&flags)
		},
	}

	cmd.Flags().StringVar(&flags.instancePath, "instance", "", "path to the MDVSP instance file")
	cmd.Flags().StringVar(&flags.method, "method", "cg", "solution method: cg or compact")
	cmd.Flags().StringVar(&flags.masterName, "master", "glpk", "LP backend for the master problem")
	cmd.Flags().StringVar(&flags.pricingName, "pricing", "spfa", "pricing algorithm: spfa, bellman or mip")
	cmd.Flags().IntVar(&flags.maxPaths, "max-paths", 0, "path budget per pricing call (unset = unbounded, 1 = single-path)")
	cmd.Flags().StringVar(&flags.importCols, "import-cols", "", "preload columns from a file before CG starts")
	cmd.Flags().StringVar(&flags.exportCols, "export-cols", "", "write the final column pool to a file")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "concurrent pricing subproblems (0 = one per depot)")
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "GRASP random seed (0 = stable default)")
	cobra.CheckErr(cmd.MarkFlagRequired("instance"))

	return cmd
}

func run(flags *rootFlags) error {
	log := logrus.StandardLogger()
	started := time.Now()

	cfg, err := envcfg.Load()
	if err != nil {
		return err
	}

	switch flags.method {
	case "cg":
	case "compact":
		return fmt.Errorf("method %q exports a compact MIP through an external collaborator and is not built into this binary", flags.method)
	default:
		return fmt.Errorf("unknown method %q (want cg or compact)", flags.method)
	}

	inst, err := instance.New(flags.instancePath, instance.WithSortedAdjacency(cfg.SortDeadheadArcs))
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"instance": flags.instancePath,
		"depots":   inst.NumDepots(),
		"trips":    inst.NumTrips(),
	}).Info("instance loaded")

	var m master.Interface
	switch flags.masterName {
	case "glpk":
		m = glpkmaster.New(inst)
	default:
		return fmt.Errorf("unknown master backend %q (want glpk)", flags.masterName)
	}

	duals := pricing.NewSnapshot(inst.NumTrips(), inst.NumDepots())
	pricers := make([]pricing.Interface, inst.NumDepots())
	for k := range pricers {
		switch flags.pricingName {
		case "spfa":
			pricers[k] = spfa.New(inst, duals, k, flags.maxPaths)
		case "bellman":
			pricers[k] = bellman.New(inst, duals, k, flags.maxPaths)
		case "mip":
			pricers[k] = mip.New(inst, duals, k, flags.maxPaths)
		default:
			return fmt.Errorf("unknown pricing algorithm %q (want spfa, bellman or mip)", flags.pricingName)
		}
		if cfg.MaxLabelExpansions > 0 {
			pricers[k].SetMaxLabelExpansionsPerNode(cfg.MaxLabelExpansions)
		}
	}

	workers := flags.workers
	if flags.pricingName == "mip" && workers != 1 {
		// GLPK is not thread-safe while building and solving problem
		// objects, so MIP pricing must run serialized.
		log.Info("mip pricing selected, serializing the pricing fan-out")
		workers = 1
	}

	if flags.importCols != "" {
		n, err := master.ImportColumns(m, flags.importCols)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"file": flags.importCols, "columns": n}).Info("columns imported")
	}

	interrupt := sigint.Watch()

	cg := cgengine.New(m, duals, pricers,
		cgengine.WithLogger(log),
		cgengine.WithWorkers(workers),
		cgengine.WithInterrupt(interrupt),
	)
	cgRes, err := cg.Run()
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"relaxedObj": cgRes.RelaxedObj,
		"finalObj":   cgRes.FinalObj,
		"iterations": cgRes.Iterations,
		"columns":    cgRes.ColumnsGenerated,
	}).Info("column generation converged")

	heur := tcg.New(inst, m, cg,
		tcg.WithLogger(log),
		tcg.WithVarSelection(cfg.TcgVarSel),
		tcg.WithGraspStrategy(cfg.TcgGraspStrategy),
		tcg.WithGraspAlpha(cfg.TcgGraspAlpha),
		tcg.WithMaxSubIterations(cfg.TcgMaxSubIterations),
		tcg.WithMaxLabelExpansionsPerNode(cfg.MaxLabelExpansionsTcg),
		tcg.WithSeed(flags.seed),
		tcg.WithInterrupt(interrupt),
	)
	tcgRes, err := heur.Run()
	if err != nil {
		return err
	}

	if flags.exportCols != "" {
		if err := master.ExportColumns(m, flags.exportCols); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"file": flags.exportCols, "columns": m.NumColumns()}).Info("columns exported")
	}

	log.WithFields(logrus.Fields{
		"binaryObj":  tcgRes.BinaryObj,
		"relaxedObj": tcgRes.RelaxedObj,
		"fixed":      tcgRes.FixedColumns,
		"covered":    tcgRes.CoveredTrips,
		"allCovered": tcgRes.AllCovered,
		"elapsed":    time.Since(started).Round(time.Millisecond).String(),
		"memoryKb":   memstat.UsageKb(),
	}).Info("solver finished")

	return nil
}
