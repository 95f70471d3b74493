package services

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"storenav-backend/models"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// RobotRecord - 로봇 CSV 한 줄
type RobotRecord struct {
	ID           string  `csv:"id"`
	Name         string  `csv:"name"`
	Variant      string  `csv:"variant"`
	X            float64 `csv:"x"`
	Y            float64 `csv:"y"`
	DestX        float64 `csv:"dest_x"`
	DestY        float64 `csv:"dest_y"`
	Heading      float64 `csv:"heading"`
	Speed        float64 `csv:"speed"`
	StuckTimerMs float64 `csv:"stuck_timer_ms"`
	Carrying     string  `csv:"carrying_product_id"`
	TaskID       string  `csv:"task_id"`
	TaskPhase    string  `csv:"task_phase"`
}

// RobotRecords - 로봇 목록 → CSV 레코드
func RobotRecords(robots []models.Robot) []RobotRecord {
	records := make([]RobotRecord, len(robots))
	for i, r := range robots {
		rec := RobotRecord{
			ID:           r.ID,
			Name:         r.Name,
			Variant:      string(r.Variant),
			X:            r.State.Position.X,
			Y:            r.State.Position.Y,
			DestX:        r.State.Destination.X,
			DestY:        r.State.Destination.Y,
			Heading:      r.State.Heading,
			Speed:        r.State.Speed,
			StuckTimerMs: r.State.StuckTimerMs,
			Carrying:     r.CarryingProductID,
		}
		if r.Task != nil {
			rec.TaskID = r.Task.ID
			rec.TaskPhase = string(r.Task.Phase)
		}
		records[i] = rec
	}
	return records
}

// WriteRobotsCSV - 로봇 상태를 헤더 포함 CSV 로 기록
func WriteRobotsCSV(w io.Writer, robots []models.Robot) error {
	if err := gocsv.Marshal(RobotRecords(robots), w); err != nil {
		return fmt.Errorf("writing robots csv: %w", err)
	}
	return nil
}

// SnapshotHeader - 스냅샷 첫 줄 (압축 해제 후 JSON 한 줄)
type SnapshotHeader struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Tick         uint64    `json:"tick"`
	RobotCount   int       `json:"robot_count"`
	ProductCount int       `json:"product_count"`
}

// Snapshot - 시뮬레이션 상태 내보내기
type Snapshot struct {
	Header   SnapshotHeader     `json:"header"`
	Layout   models.StoreLayout `json:"layout"`
	Robots   []models.Robot     `json:"robots"`
	Products []models.Product   `json:"products"`
}

// NewSnapshot - 현재 상태로 스냅샷 구성
func NewSnapshot(layout models.StoreLayout, tick uint64, robots []models.Robot, products []models.Product) Snapshot {
	return Snapshot{
		Header: SnapshotHeader{
			ID:           uuid.New().String(),
			CreatedAt:    time.Now().UTC(),
			Tick:         tick,
			RobotCount:   len(robots),
			ProductCount: len(products),
		},
		Layout:   layout,
		Robots:   robots,
		Products: products,
	}
}

// WriteSnapshot - 헤더 줄 + 본문 JSON 을 zstd 로 압축해 기록
func WriteSnapshot(w io.Writer, snap Snapshot) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(enc, 64*1024)

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		enc.Close()
		return err
	}
	if err := json.NewEncoder(bw).Encode(&snap); err != nil {
		enc.Close()
		return fmt.Errorf("snapshot encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadSnapshot - WriteSnapshot 출력 복원
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot

	dec, err := zstd.NewReader(r)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)

	// 헤더 줄은 본문에도 들어 있다
	if _, err := br.ReadBytes('\n'); err != nil {
		return snap, fmt.Errorf("snapshot header: %w", err)
	}
	if err := json.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("snapshot decode: %w", err)
	}
	return snap, nil
}
