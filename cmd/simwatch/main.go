package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"storenav-backend/models"
	"storenav-backend/services"

	"github.com/gdamore/tcell/v2"
	"github.com/gorilla/websocket"
)

// envelope - 메시지 타입만 먼저 읽고 data 는 나중에 디코딩
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type view struct {
	layout  models.StoreLayout
	update  models.RobotsUpdateData
	running bool
	status  string
}

func main() {
	var (
		url        = flag.String("url", "ws://localhost:3000/websocket/sim?client=viewer", "시뮬레이션 스트림 주소")
		layoutFile = flag.String("layout", "", "레이아웃 YAML (서버와 같은 값)")
	)
	flag.Parse()

	layout := models.DefaultStoreLayout()
	if *layoutFile != "" {
		l, err := services.LoadLayoutFile(*layoutFile)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		layout = l
	}

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		log.Fatalf("❌ 연결 실패: %v", err)
	}
	defer conn.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("❌ 화면 생성 실패: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("❌ 화면 초기화 실패: %v", err)
	}
	defer screen.Fini()

	messages := make(chan envelope, 16)
	go func() {
		defer close(messages)
		for {
			var env envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			messages <- env
		}
	}()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	v := &view{layout: layout, status: "connected: " + *url}
	draw(screen, v)

	for {
		select {
		case env, ok := <-messages:
			if !ok {
				screen.Fini()
				fmt.Fprintln(os.Stderr, "스트림 종료")
				return
			}
			v.apply(env)
			draw(screen, v)

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				draw(screen, v)
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return
				}
			}
		}
	}
}

// apply - 수신 메시지 반영
func (v *view) apply(env envelope) {
	switch env.Type {
	case models.MessageTypeRobotsUpdate:
		var data models.RobotsUpdateData
		if err := json.Unmarshal(env.Data, &data); err == nil {
			v.update = data
			v.running = true
		}
	case models.MessageTypeSimStatus:
		var data struct {
			Running bool `json:"running"`
		}
		if err := json.Unmarshal(env.Data, &data); err == nil {
			v.running = data.Running
		}
	case models.MessageTypeSystemInfo:
		var data map[string]interface{}
		if err := json.Unmarshal(env.Data, &data); err == nil {
			if msg, ok := data["message"].(string); ok {
				v.status = msg
			}
		}
	}
}

// draw - 매장을 터미널 크기에 맞춰 그린다 (위쪽이 +y)
func draw(s tcell.Screen, v *view) {
	s.Clear()
	width, height := s.Size()
	if width < 10 || height < 5 {
		s.Show()
		return
	}

	mapH := height - 2
	w, h := v.layout.StoreWidth, v.layout.StoreHeight
	if v.layout.IsHorizontal() {
		w, h = h, w
	}
	toScreen := func(p models.Point) (int, int, bool) {
		x := int((p.X + w/2) / w * float64(width-1))
		y := int((h/2 - p.Y) / h * float64(mapH-1))
		return x, y + 1, x >= 0 && x < width && y >= 0 && y < mapH
	}

	laneStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for lane := 0; lane < v.layout.LaneCount; lane++ {
		cx := v.layout.LaneCenter(lane)
		for row := 0; row < mapH; row++ {
			cy := v.layout.StoreHeight/2 - float64(row)/float64(mapH-1)*v.layout.StoreHeight
			if x, y, ok := toScreen(v.layout.World(models.Point{X: cx, Y: cy})); ok {
				s.SetContent(x, y, '░', nil, laneStyle)
			}
		}
	}

	robotStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	taskStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	for _, r := range v.update.Robots {
		x, y, ok := toScreen(r.State.Position)
		if !ok {
			continue
		}
		style := robotStyle
		ch := 'o'
		if r.Task != nil {
			style = taskStyle
			ch = '@'
			for _, wp := range r.Task.Waypoints {
				if wx, wy, ok := toScreen(wp); ok {
					s.SetContent(wx, wy, '·', nil, taskStyle)
				}
			}
		}
		s.SetContent(x, y, ch, nil, style)
	}

	state := "stopped"
	if v.running {
		state = "running"
	}
	header := fmt.Sprintf(" StoreNav  tick %d  robots %d  [%s]  q: quit ", v.update.Tick, len(v.update.Robots), state)
	putString(s, 0, 0, header, tcell.StyleDefault.Reverse(true))
	putString(s, 0, height-1, v.status, tcell.StyleDefault)
	s.Show()
}

// putString - 한 줄 출력 (전각 문자는 두 칸)
func putString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
		if r >= 0x1100 {
			x++
		}
	}
}
