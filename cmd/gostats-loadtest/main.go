package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goStats "github.com/MrEthical07/goStats"
	"github.com/MrEthical07/goStats/sinks/redissink"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	var (
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 2000000, "operations per phase")
		window      = flag.Duration("window", time.Minute, "rolling counter window")
		publish     = flag.Bool("publish", false, "publish snapshots to redis while the load runs")
		interval    = flag.Duration("interval", 100*time.Millisecond, "snapshot interval when -publish is set")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
	)
	flag.Parse()

	if *concurrency <= 0 || *ops <= 0 || *window <= 0 {
		fmt.Fprintln(os.Stderr, "concurrency, ops, and window must be > 0")
		os.Exit(2)
	}

	reg, err := goStats.NewRegistry(goStats.MetricsConfig{Enabled: true, RollingWindow: *window})
	if err != nil {
		fmt.Fprintf(os.Stderr, "registry: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reporter *goStats.Reporter
	if *publish {
		client, cleanup := openRedis(*redisAddr)
		defer cleanup()

		sink, err := redissink.New(client, redissink.Config{Nested: true})
		if err != nil {
			fmt.Fprintf(os.Stderr, "redis sink: %v\n", err)
			os.Exit(1)
		}
		reporter, err = goStats.NewReporter(reg, goStats.ReporterConfig{
			Enabled:    true,
			Interval:   *interval,
			BufferSize: 4,
			DropIfFull: true,
			Nested:     true,
		}, sink)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reporter: %v\n", err)
			os.Exit(1)
		}
		if err := reporter.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "reporter start: %v\n", err)
			os.Exit(1)
		}
	}

	endpoints := goStats.Endpoints()
	requestStats := runRequestPhase(reg, endpoints, *ops, *concurrency)
	counterStats := runCounterPhase(reg, *ops, *concurrency)

	if reporter != nil {
		reporter.Close()
	}

	fmt.Println("---- results ----")
	printStats("record_request", requestStats)
	printStats("inc_mixed", counterStats)

	lost := verify(reg, *ops)
	if reporter != nil {
		fmt.Printf("reporter: published=%d failed=%d dropped=%d\n",
			reporter.Published(), reporter.Failed(), reporter.Dropped())
	}
	if lost {
		os.Exit(1)
	}
}

func openRedis(addr string) (redis.UniversalClient, func()) {
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}
	if addr != "" {
		client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
		fmt.Printf("using redis at %s\n", addr)
		return client, func() { _ = client.Close() }
	}

	mr, err := miniredis.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
		os.Exit(1)
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
	fmt.Printf("using miniredis at %s\n", mr.Addr())
	return client, func() {
		_ = client.Close()
		mr.Close()
	}
}

// runRequestPhase drives RecordRequest and RecordOutcome across every
// endpoint, the way a busy plugin would.
func runRequestPhase(reg *goStats.Registry, endpoints []goStats.Endpoint, ops, concurrency int) phaseStats {
	return runPhase(ops, concurrency, 7919, func(r *rand.Rand) {
		ep := endpoints[r.Intn(len(endpoints))]
		reg.RecordRequest(ep)
		reg.RecordOutcome(ep, 200)
	})
}

var hotDestinations = [...]goStats.DestinationKind{
	goStats.DestinationSlack,
	goStats.DestinationChime,
	goStats.DestinationWebhook,
	goStats.DestinationEmail,
	goStats.DestinationSNS,
}

func runCounterPhase(reg *goStats.Registry, ops, concurrency int) phaseStats {
	return runPhase(ops, concurrency, 6151, func(r *rand.Rand) {
		reg.RecordDestination(hotDestinations[r.Intn(len(hotDestinations))])
	})
}

func runPhase(ops, concurrency int, seed int64, op func(r *rand.Rand)) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		latencies = make([][]time.Duration, concurrency)
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*seed))
			samples := make([]time.Duration, 0, ops/concurrency+1)
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					break
				}
				t0 := time.Now()
				op(r)
				samples = append(samples, time.Since(t0))
			}
			latencies[worker] = samples
		}(w)
	}
	wg.Wait()
	total := time.Since(start)

	all := make([]time.Duration, 0, ops)
	for _, s := range latencies {
		all = append(all, s...)
	}
	return computeStats(total, all)
}

// verify checks that no increment was lost: monotonic totals must match the
// operation count exactly.
func verify(reg *goStats.Registry, ops int) bool {
	want := int64(ops)
	lost := false

	check := func(name string, got int64) {
		status := "ok"
		if got != want {
			status = "LOST UPDATES"
			lost = true
		}
		fmt.Printf("verify %s: got=%d want=%d %s\n", name, got, want, status)
	}

	check("request_total", reg.Value(goStats.MetricRequestTotal))

	var endpointTotal int64
	for _, ep := range goStats.Endpoints() {
		endpointTotal += reg.Value(ep.Total)
	}
	check("endpoint totals", endpointTotal)

	var destinations int64
	for _, kind := range hotDestinations {
		destinations += reg.Lookup("notifications.message_destination." + string(kind)).Value()
	}
	check("notifications.message_destination.*", destinations)

	return lost
}

type phaseStats struct {
	total   time.Duration
	ops     int
	p50     time.Duration
	p95     time.Duration
	p99     time.Duration
	opsPerS float64
}

func computeStats(total time.Duration, samples []time.Duration) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:   total,
		ops:     len(samples),
		p50:     percentile(samples, 50),
		p95:     percentile(samples, 95),
		p99:     percentile(samples, 99),
		opsPerS: float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
