// Command lattice is the Lattice command-line tool: inspect registered
// backends, benchmark kernels and examine .lat tensor containers.
package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	_ "github.com/lattice-ml/lattice/backend/cpu"
	_ "github.com/lattice-ml/lattice/backend/webgpu"
	"github.com/lattice-ml/lattice/internal/serialization"
	"github.com/lattice-ml/lattice/kernels"
	"github.com/lattice-ml/lattice/tensor"
)

const version = "v0.1.0-dev"

func main() {
	root := &cobra.Command{
		Use:           "lattice",
		Short:         "Lattice tensor-array toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(versionCmd(), backendsCmd(), benchCmd(), dumpCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the Lattice version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lattice %s\n", version)
		},
	}
}

func backendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List registered backends and their kernel tables",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range kernels.BackendNames() {
				b, err := kernels.NewBackendByName(name)
				if err != nil {
					fmt.Printf("%-10s unavailable: %v\n", name, err)
					continue
				}
				fmt.Printf("%-10s device=%s kernels=%v\n", name, b.Device(), b.Kernels().Names())
			}
		},
	}
}

func benchCmd() *cobra.Command {
	var (
		size    int
		iters   int
		backend string
		dtype   string
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the Dot kernel",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				b   kernels.Backend
				err error
			)
			if backend != "" {
				b, err = kernels.NewBackendByName(backend)
			} else {
				b, err = kernels.NewBackend()
			}
			if err != nil {
				return err
			}

			var elapsed time.Duration
			var operandBytes uint64
			switch dtype {
			case "float32":
				elapsed, operandBytes = benchDot[float32](b, size, iters)
			case "float64":
				elapsed, operandBytes = benchDot[float64](b, size, iters)
			default:
				return fmt.Errorf("unsupported dtype %q (float32, float64)", dtype)
			}

			flops := 2 * float64(size) * float64(size) * float64(size) * float64(iters)
			fmt.Printf("backend=%s dtype=%s size=%dx%d (%s per operand) iters=%d\n",
				b.Name(), dtype, size, size, humanize.IBytes(operandBytes), iters)
			fmt.Printf("total=%v avg=%v %.2f GFLOP/s\n",
				elapsed, elapsed/time.Duration(iters), flops/elapsed.Seconds()/1e9)
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 512, "square matrix dimension")
	cmd.Flags().IntVar(&iters, "iters", 10, "iterations to average over")
	cmd.Flags().StringVar(&backend, "backend", "", "backend name (default: "+kernels.EnvBackend+" or first registered)")
	cmd.Flags().StringVar(&dtype, "dtype", "float32", "element type: float32 or float64")
	return cmd
}

func benchDot[T interface{ ~float32 | ~float64 }](b kernels.Backend, size, iters int) (time.Duration, uint64) {
	a := tensor.Randn[T](tensor.Shape{size, size}, b)
	x := tensor.Randn[T](tensor.Shape{size, size}, b)

	start := time.Now()
	for i := 0; i < iters; i++ {
		a.Dot(x)
	}
	return time.Since(start), uint64(a.Raw().ByteSize())
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file.lat>",
		Short: "List the tensors in a .lat container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tensors, err := serialization.Load(args[0])
			if err != nil {
				return err
			}
			names := make([]string, 0, len(tensors))
			for name := range tensors {
				names = append(names, name)
			}
			sort.Strings(names)
			var total uint64
			for _, name := range names {
				t := tensors[name]
				total += uint64(t.ByteSize())
				fmt.Printf("%-32s %-8s %v\n", name, t.DType(), t.Shape())
			}
			fmt.Printf("%d tensors, %s\n", len(names), humanize.IBytes(total))
			return nil
		},
	}
}
