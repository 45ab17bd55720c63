package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/mirror"
	"github.com/lac-hong-legacy/lecture_api/playback"
	"github.com/lac-hong-legacy/lecture_api/shared"
	"github.com/spf13/cobra"
)

const tickInterval = 250 * time.Millisecond

func newPlayCmd(opts *Options) *cobra.Command {
	var speed float64
	var duration int

	cmd := &cobra.Command{
		Use:   "play <lectureId>",
		Short: "Play a video lecture and report progress as it goes",
		Long: "Simulates playback of a video lecture. Progress is reported the way the\n" +
			"web player does it: throttled, mirrored locally and sent to the API.\n" +
			"space pauses, → skips ahead, q stops.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			store, err := opts.openMirror()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := context.Background()
			lectureID := args[0]

			lecture, err := c.GetLecture(ctx, lectureID)
			if err != nil {
				return err
			}
			if lecture.ContentType != shared.ContentTypeVideo {
				return fmt.Errorf("%q is not a video lecture, use `learner complete %s` once read", lecture.Title, lectureID)
			}
			current, err := c.GetLectureProgress(ctx, lectureID)
			if err != nil {
				return err
			}

			length := float64(lecture.EstimatedDuration)
			if duration > 0 {
				length = float64(duration)
			}
			if length <= 0 {
				return fmt.Errorf("%q has no duration, pass --duration", lecture.Title)
			}

			m := newPlayModel(lecture, current, length, speed)
			program := tea.NewProgram(m)

			rec := mirror.NewRecorder(store, c, lectureID,
				mirror.WithSendTimeout(opts.Timeout),
				mirror.WithCompleted(current.IsCompleted),
				mirror.OnComplete(func(resp *dto.CompleteLectureResponse) { program.Send(completedMsg{resp}) }))

			reports := newReporter(rec, func(u playback.Update) { program.Send(reportedMsg{u}) })
			m.tracker = playback.New(reports.sink,
				playback.WithInitialProgress(current.WatchPercentage, current.TimeSpent),
				playback.WithConfig(trackerConfig(m.step)))

			final, err := program.Run()
			m.tracker.Close()
			reports.close()
			if err != nil {
				return err
			}

			if fm, ok := final.(*playModel); ok && fm.completed != nil {
				printNext(cmd, fm.completed)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&speed, "speed", 8, "Playback speed multiplier")
	cmd.Flags().IntVar(&duration, "duration", 0, "Override the lecture length in seconds")
	return cmd
}

func trackerConfig(step float64) playback.Config {
	cfg := playback.DefaultConfig()
	// every simulated tick is continuous playback, not a seek
	if step > cfg.MaxStep {
		cfg.MaxStep = step
	}
	return cfg
}

// reporter moves sink calls off the UI loop. Updates are recorded in emit
// order by a single goroutine.
type reporter struct {
	updates chan playback.Update
	wg      sync.WaitGroup
}

func newReporter(rec *mirror.Recorder, after func(playback.Update)) *reporter {
	r := &reporter{updates: make(chan playback.Update, 64)}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for u := range r.updates {
			rec.Record(u)
			after(u)
		}
	}()
	return r
}

func (r *reporter) sink(u playback.Update) {
	r.updates <- u
}

func (r *reporter) close() {
	close(r.updates)
	r.wg.Wait()
}

type tickMsg time.Time

type reportedMsg struct{ update playback.Update }

type completedMsg struct{ resp *dto.CompleteLectureResponse }

type playModel struct {
	title    string
	duration float64
	position float64
	step     float64

	tracker *playback.Tracker
	bar     progress.Model

	paused     bool
	ended      bool
	lastReport *playback.Update
	completed  *dto.CompleteLectureResponse
}

func newPlayModel(lecture *dto.LectureResponse, current *dto.LectureProgressResponse, duration, speed float64) *playModel {
	if speed <= 0 {
		speed = 1
	}
	m := &playModel{
		title:    lecture.Title,
		duration: duration,
		step:     speed * tickInterval.Seconds(),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(48)),
	}
	// resume where the learner stopped unless the lecture was finished
	if !current.IsCompleted && current.LastPosition < duration {
		m.position = current.LastPosition
	}
	return m
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *playModel) Init() tea.Cmd {
	return tick()
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.tracker.Flush()
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "right", "l":
			if !m.ended {
				m.position += m.duration / 10
				m.advance()
			}
		}
		return m, nil

	case tickMsg:
		if m.ended {
			return m, nil
		}
		if !m.paused {
			m.position += m.step
			m.advance()
		}
		if m.ended {
			return m, tea.Tick(time.Second, func(time.Time) tea.Msg { return tea.Quit() })
		}
		return m, tick()

	case reportedMsg:
		u := msg.update
		m.lastReport = &u
		return m, nil

	case completedMsg:
		m.completed = msg.resp
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-4, 64)
		return m, nil
	}
	return m, nil
}

func (m *playModel) advance() {
	if m.position >= m.duration {
		m.position = m.duration
		m.tracker.OnTimeUpdate(m.position, m.duration)
		m.tracker.OnEnded()
		m.ended = true
		return
	}
	m.tracker.OnTimeUpdate(m.position, m.duration)
}

func (m *playModel) View() string {
	state := styleGreen.Render("playing")
	switch {
	case m.ended:
		state = styleGreen.Render("ended")
	case m.paused:
		state = styleYellow.Render("paused")
	}

	view := fmt.Sprintf("%s  %s\n\n%s\n%s / %s\n\n",
		styleHeader.Render(m.title), state,
		m.bar.ViewAs(m.position/m.duration),
		formatSeconds(int(m.position)), formatSeconds(int(m.duration)))

	watched := m.tracker.Progress()
	view += fmt.Sprintf("watched %.0f%%  time %s\n", watched, formatSeconds(m.tracker.TimeSpent()))
	if m.lastReport != nil {
		view += styleDim.Render(fmt.Sprintf("last report %.0f%% at %s", m.lastReport.Percent, m.lastReport.At.Format("15:04:05"))) + "\n"
	}
	if m.completed != nil {
		view += styleGreen.Render("Lecture completed") + "\n"
	}
	view += styleDim.Render("space pause  → skip  q quit") + "\n"
	return view
}
