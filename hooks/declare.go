package hooks

// Hooks marks a struct as a hook container. Embed it; it is never
// implemented.
type Hooks interface {
	hooksContainer()
}

// HookSet marks an interface as a hook container. Embed it; it is never
// implemented.
type HookSet interface {
	hookSetContainer()
}

// Declaration markers. F is the hook's function signature, e.g.
// Sync[func(newSpeed int)]. They carry no behaviour and exist only to be
// read by hookgen.
type (
	Sync[F any]                    interface{ declare(F) }
	SyncBail[F any]                interface{ declare(F) }
	SyncLoop[F any]                interface{ declare(F) }
	SyncWaterfall[F any]           interface{ declare(F) }
	AsyncSeries[F any]             interface{ declare(F) }
	AsyncSeriesLoop[F any]         interface{ declare(F) }
	AsyncSeriesWaterfall[F any]    interface{ declare(F) }
	AsyncSeriesBail[F any]         interface{ declare(F) }
	AsyncSeriesParallel[F any]     interface{ declare(F) }
	AsyncSeriesParallelBail[F any] interface{ declare(F) }
)
