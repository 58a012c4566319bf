package goods

import "sort"

// ODType classifies a shipment.
type ODType int

const (
	// Local is producer to consumer inside the map.
	Local ODType = iota
	// Import is map edge to consumer.
	Import
	// Export is producer to map edge.
	Export
)

// String returns "local", "import" or "export".
func (t ODType) String() string {
	switch t {
	case Import:
		return "import"
	case Export:
		return "export"
	}
	return "local"
}

// MarshalText encodes the type by name.
func (t ODType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// ODEdge aggregates every shipment of one type between two road tiles.
// TotalSteps and TotalCostMilli are amount-weighted sums.
type ODEdge struct {
	Type           ODType `json:"type"`
	SrcRoadIdx     int    `json:"srcRoadIdx"`
	DstRoadIdx     int    `json:"dstRoadIdx"`
	Amount         int    `json:"amount"`
	TotalSteps     int64  `json:"totalSteps"`
	TotalCostMilli int64  `json:"totalCostMilli"`
	MinSteps       int    `json:"minSteps"`
	MaxSteps       int    `json:"maxSteps"`
	MinCostMilli   int    `json:"minCostMilli"`
	MaxCostMilli   int    `json:"maxCostMilli"`
}

// MeanSteps is TotalSteps/Amount (0 for an empty edge).
func (e ODEdge) MeanSteps() float64 {
	if e.Amount <= 0 {
		return 0
	}
	return float64(e.TotalSteps) / float64(e.Amount)
}

// MeanCostMilli is TotalCostMilli/Amount (0 for an empty edge).
func (e ODEdge) MeanCostMilli() float64 {
	if e.Amount <= 0 {
		return 0
	}
	return float64(e.TotalCostMilli) / float64(e.Amount)
}

type odKey struct {
	typ      ODType
	src, dst int
}

// Debug collects ODEdges during Compute. OD is sorted by (type, src, dst).
type Debug struct {
	OD []ODEdge `json:"od"`

	index map[odKey]int
}

func (d *Debug) reset() {
	d.OD = d.OD[:0]
	d.index = make(map[odKey]int)
}

// add records amount units shipped along a route of the given steps and cost.
func (d *Debug) add(typ ODType, src, dst, amount, steps, cost int) {
	if d == nil || amount <= 0 {
		return
	}
	k := odKey{typ, src, dst}
	i, ok := d.index[k]
	if !ok {
		i = len(d.OD)
		d.index[k] = i
		d.OD = append(d.OD, ODEdge{
			Type: typ, SrcRoadIdx: src, DstRoadIdx: dst,
			MinSteps: steps, MaxSteps: steps, MinCostMilli: cost, MaxCostMilli: cost,
		})
	}
	e := &d.OD[i]
	e.Amount += amount
	e.TotalSteps += int64(amount) * int64(steps)
	e.TotalCostMilli += int64(amount) * int64(cost)
	e.MinSteps, e.MaxSteps = min(e.MinSteps, steps), max(e.MaxSteps, steps)
	e.MinCostMilli, e.MaxCostMilli = min(e.MinCostMilli, cost), max(e.MaxCostMilli, cost)
}

func (d *Debug) finish() {
	sort.Slice(d.OD, func(i, j int) bool {
		a, b := d.OD[i], d.OD[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.SrcRoadIdx != b.SrcRoadIdx {
			return a.SrcRoadIdx < b.SrcRoadIdx
		}
		return a.DstRoadIdx < b.DstRoadIdx
	})
	d.index = nil
}

// Top returns up to topN edges (all when topN <= 0) with Amount >= minAmount,
// ordered by amount desc, then type, src and dst.
func (d *Debug) Top(topN, minAmount int) []ODEdge {
	if d == nil {
		return nil
	}
	var rows []ODEdge
	for _, e := range d.OD {
		if e.Amount >= minAmount && e.Amount > 0 {
			rows = append(rows, e)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Amount != b.Amount {
			return a.Amount > b.Amount
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.SrcRoadIdx != b.SrcRoadIdx {
			return a.SrcRoadIdx < b.SrcRoadIdx
		}
		return a.DstRoadIdx < b.DstRoadIdx
	})
	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}

	return rows
}
