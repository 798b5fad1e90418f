package simulator

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/lox/pokersim/internal/fileutil"
	"github.com/lox/pokersim/internal/phh"
	"github.com/lox/pokersim/internal/statistics"
)

// schemaVersion is written into the Parquet key/value metadata
const schemaVersion = "pokersim_hand_v1"

// HandRecord is one simulated hand, as exported to Parquet
type HandRecord struct {
	Hand     int64   `parquet:"hand"`
	Seed     int64   `parquet:"seed"`
	Hero     string  `parquet:"hero,dict"`
	Villain  string  `parquet:"villain,dict"`
	Seats    int32   `parquet:"seats"`
	HeroSeat int32   `parquet:"hero_seat"`
	NetChips int64   `parquet:"net_chips"`
	NetBB    float64 `parquet:"net_bb"`
	BigBlind int64   `parquet:"big_blind"`
	Pot      int64   `parquet:"pot"`
	Street   string  `parquet:"street,dict"`
	Showdown bool    `parquet:"showdown"`
	HeroWon  bool    `parquet:"hero_won"`
	HandName string  `parquet:"hand_name,dict"`
	HeroHand string  `parquet:"hero_hand,dict"`
	Actions  int32   `parquet:"actions"`
}

// Result converts the record for the statistics accumulator
func (r HandRecord) Result() statistics.HandResult {
	var potBB float64
	if r.BigBlind > 0 {
		potBB = float64(r.Pot) / float64(r.BigBlind)
	}
	return statistics.HandResult{
		NetBB:    r.NetBB,
		Seed:     r.Seed,
		Seat:     int(r.HeroSeat),
		Showdown: r.Showdown,
		Pot:      int(r.Pot),
		PotBB:    potBB,
	}
}

// WriteParquet writes records to path atomically
func WriteParquet(path string, records []HandRecord) error {
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return writeRecords(w, records)
	})
	if err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}
	return nil
}

func writeRecords(w io.Writer, records []HandRecord) error {
	pw := parquet.NewGenericWriter[HandRecord](w,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	pw.SetKeyValueMetadata("schema", schemaVersion)
	if _, err := pw.Write(records); err != nil {
		_ = pw.Close()
		return err
	}
	return pw.Close()
}

// WriteHistories writes hand histories to path as a PHHS file
func WriteHistories(path string, hands []*phh.HandHistory) error {
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return phh.EncodeAll(w, hands)
	})
	if err != nil {
		return fmt.Errorf("write hand histories: %w", err)
	}
	return nil
}

// ReadParquet loads records written by WriteParquet
func ReadParquet(path string) ([]HandRecord, error) {
	rows, err := parquet.ReadFile[HandRecord](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows, nil
}
