// Command gx2ctl drives an in-process gx2.Pool against a synthetic GPU
// queue for manual soak-testing and inspection, the way the teacher
// repository keeps small standalone tools alongside its library in cmd/.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gogpu/cbpool/gx2"
	"github.com/gogpu/cbpool/internal/coreinit"
	"github.com/gogpu/cbpool/internal/simulate"
)

var (
	ringWords  int
	iterations int
	interval   time.Duration
)

func main() {
	root := &cobra.Command{
		Use:   "gx2ctl",
		Short: "Inspect and soak-test a gx2 command-buffer pool",
	}

	flags := root.PersistentFlags()
	flags.IntVar(&ringWords, "ring-words", 0x40000, "ring capacity in 32-bit words")

	root.AddCommand(newInspectCommand())
	root.AddCommand(newSimulateCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildPool() (*gx2.Pool, *coreinit.Provider, *simulate.Queue, error) {
	core := coreinit.NewDefault()
	core.BindCore(core.MainCoreID())

	storage := gx2.NewHostStorage(ringWords)

	var queue *simulate.Queue
	pool, err := gx2.New(storage,
		gx2.WithCoreProvider(core),
		gx2.WithCoreIdentifier(core.CoreID),
		gx2.WithGPUQueue(gpuQueueFunc(&queue)),
		gx2.WithRetirementWaiter(retirementFunc(&queue)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	queue = simulate.NewQueue(pool)
	if err := pool.Init(core.MainCoreID()); err != nil {
		return nil, nil, nil, err
	}

	return pool, core, queue, nil
}

// gpuQueueFunc and retirementFunc defer resolving the *simulate.Queue
// until after it is constructed, since the queue itself needs the pool
// (as its gx2.CompletionSink) to exist first.
func gpuQueueFunc(q **simulate.Queue) gx2.GPUQueue {
	return queueAdapter{q}
}

func retirementFunc(q **simulate.Queue) gx2.RetirementWaiter {
	return queueAdapter{q}
}

type queueAdapter struct {
	q **simulate.Queue
}

func (a queueAdapter) QueueCommandBuffer(d *gx2.Descriptor) { (*a.q).QueueCommandBuffer(d) }
func (a queueAdapter) RetiredTimestamp() uint64             { return (*a.q).RetiredTimestamp() }
func (a queueAdapter) WaitForTimestamp(t uint64)            { (*a.q).WaitForTimestamp(t) }

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print a freshly-initialized pool's ring state",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, _, queue, err := buildPool()
			if err != nil {
				return err
			}
			defer queue.Stop()
			defer pool.Close()

			fmt.Println(pool)
			return nil
		},
	}
}

func newSimulateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Drive random allocate/write/flush cycles against the pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, core, queue, err := buildPool()
			if err != nil {
				return err
			}
			defer queue.Stop()
			defer pool.Close()

			queue.RunAuto(interval)

			mainCore := core.MainCoreID()
			rng := rand.New(rand.NewSource(1))
			for i := 0; i < iterations; i++ {
				words := uint32(64 + rng.Intn(512))
				d := pool.GetCommandBuffer(mainCore, words)
				for j := uint32(0); j < words; j++ {
					d.Buffer[d.CurSize] = rng.Uint32()
					d.CurSize++
				}
				if i%8 == 0 {
					fmt.Println(pool)
				}
			}

			return nil
		},
	}

	var flags *pflag.FlagSet = cmd.Flags()
	flags.IntVar(&iterations, "iterations", 256, "number of allocate/write cycles to run")
	flags.DurationVar(&interval, "retire-interval", 2*time.Millisecond, "simulated GPU retirement interval")

	return cmd
}
