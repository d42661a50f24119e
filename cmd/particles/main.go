// Package main provides a particle effect viewer for authoring and debugging
// declarative emitter configs.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--emitters <dir>      Directory of emitter YAML files (default data/emitters)
//	--resources <file>    resources.yaml mapping texture IDs to files
//	--effect <name>       Start with a specific effect
//	--preload <groups>    Comma-separated resource groups loaded at startup
//	--verbose             Keep logging after startup
//
// Controls:
//
//	Mouse Click       - Spawn the current effect at the cursor
//	Space             - Spawn the current effect at screen center
//	Left/Right Arrow  - Switch to previous/next effect
//	S                 - Save the current effect as a preset
//	R                 - Clear all particles
//	P                 - Toggle pause
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/Tomortec/particle-emitter/pkg/behavior"
	"github.com/Tomortec/particle-emitter/pkg/config"
	"github.com/Tomortec/particle-emitter/pkg/ecs"
	"github.com/Tomortec/particle-emitter/pkg/game"
	"github.com/Tomortec/particle-emitter/pkg/systems"
)

const (
	screenWidth  = 1024
	screenHeight = 768
	presetPrefix = "preset:"
)

var errQuit = errors.New("quit requested")

var (
	emittersFlag  = flag.String("emitters", "data/emitters", "Directory of emitter YAML files")
	resourcesFlag = flag.String("resources", "data/resources.yaml", "Resource config mapping texture IDs to files")
	effectFlag    = flag.String("effect", "", "Start with specific effect name")
	preloadFlag   = flag.String("preload", "sparks", "Comma-separated resource groups to load at startup")
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

// effect is one selectable emitter config and its lazily built pipeline.
type effect struct {
	name     string
	cfg      *config.EmitterConfig
	pipeline *behavior.Pipeline
}

// ParticleViewerGame implements ebiten.Game for the particle viewer
type ParticleViewerGame struct {
	entityManager   *ecs.EntityManager
	particleSystem  *systems.ParticleSystem
	renderSystem    *systems.RenderSystem
	resourceManager *game.ResourceManager
	registry        *behavior.Registry
	presets         *game.PresetStore

	effects      []*effect
	currentIndex int

	paused        bool
	statusMessage string
}

// NewParticleViewerGame creates a new particle viewer game instance
func NewParticleViewerGame() (*ParticleViewerGame, error) {
	rm := game.NewResourceManager()
	if err := rm.LoadResourceConfig(*resourcesFlag); err != nil {
		return nil, fmt.Errorf("failed to load resource config: %w", err)
	}
	preloadGroups(rm, *preloadFlag)

	gdataManager, err := gdata.Open(gdata.Config{AppName: "particle_emitter_viewer"})
	if err != nil {
		log.Printf("Warning: preset storage unavailable: %v (presets stay in memory)", err)
		gdataManager = nil
	}

	em := ecs.NewEntityManager()
	g := &ParticleViewerGame{
		entityManager:   em,
		particleSystem:  systems.NewParticleSystem(em),
		renderSystem:    systems.NewRenderSystem(em),
		resourceManager: rm,
		registry:        behavior.DefaultRegistry(),
		presets:         game.NewPresetStore(gdataManager),
	}

	if err := g.loadEffects(*emittersFlag); err != nil {
		return nil, err
	}
	if len(g.effects) == 0 {
		return nil, fmt.Errorf("no emitter configs found in %s", *emittersFlag)
	}

	for i, e := range g.effects {
		if e.name == *effectFlag {
			g.currentIndex = i
			break
		}
	}

	g.updateStatusMessage()
	log.Printf("Particle Viewer initialized: %d effects", len(g.effects))

	// 启动时在屏幕中心生成当前效果，避免空白屏幕
	g.spawnCurrentEffect(screenWidth/2, screenHeight/2)
	return g, nil
}

// loadEffects reads every emitter YAML in dir plus the saved presets.
// A broken file is logged and skipped.
func (g *ParticleViewerGame) loadEffects(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("failed to scan emitter directory: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		cfg, err := config.LoadEmitterConfig(file)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", file, err)
			continue
		}
		name := cfg.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		}
		g.effects = append(g.effects, &effect{name: name, cfg: cfg})
	}

	for _, name := range g.presets.Names() {
		cfg, _ := g.presets.Get(name)
		g.effects = append(g.effects, &effect{name: presetPrefix + name, cfg: cfg})
	}
	return nil
}

// Update implements ebiten.Game.
func (g *ParticleViewerGame) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		if g.paused {
			g.statusMessage = "PAUSED - Press P to resume"
		} else {
			g.statusMessage = "Resumed"
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.switchEffect(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.switchEffect(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.particleSystem.Clear()
		g.statusMessage = "Cleared"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveCurrentPreset()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.spawnCurrentEffect(screenWidth/2, screenHeight/2)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.spawnCurrentEffect(float64(x), float64(y))
	}

	if !g.paused {
		g.particleSystem.Update(dt)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *ParticleViewerGame) Draw(screen *ebiten.Image) {
	g.renderSystem.DrawParticles(screen)
	g.drawUI(screen)
}

func (g *ParticleViewerGame) drawUI(screen *ebiten.Image) {
	current := g.effects[g.currentIndex]
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Effect %d/%d: %s", g.currentIndex+1, len(g.effects), current.name), 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Particles: %d  Entities: %d", g.particleSystem.ParticleCount(), g.entityManager.EntityCount()), 10, 30)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Textures: %d/%d loaded", g.loadedTextures(), len(g.resourceManager.ImageIDs())), 10, 50)
	ebitenutil.DebugPrintAt(screen, g.statusMessage, 10, 70)
	ebitenutil.DebugPrintAt(screen, "Click/Space spawn  Left/Right switch  S save preset  R clear  P pause  Q quit", 10, screenHeight-20)
}

// loadedTextures counts the resource IDs whose image is already cached.
func (g *ParticleViewerGame) loadedTextures() int {
	count := 0
	for _, id := range g.resourceManager.ImageIDs() {
		if g.resourceManager.GetImageByID(id) != nil {
			count++
		}
	}
	return count
}

// Layout implements ebiten.Game.
func (g *ParticleViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// pipelineFor builds the effect's behavior pipeline on first use.
func (g *ParticleViewerGame) pipelineFor(e *effect) (*behavior.Pipeline, error) {
	if e.pipeline != nil {
		return e.pipeline, nil
	}
	pipeline, err := g.registry.BuildPipeline(e.cfg.Behaviors, behavior.Env{Textures: g.resourceManager})
	if err != nil {
		return nil, fmt.Errorf("effect %s: %w", e.name, err)
	}
	e.pipeline = pipeline
	return pipeline, nil
}

// spawnCurrentEffect spawns the selected effect at (x, y)
func (g *ParticleViewerGame) spawnCurrentEffect(x, y float64) {
	current := g.effects[g.currentIndex]
	pipeline, err := g.pipelineFor(current)
	if err != nil {
		log.Printf("Failed to create effect %s: %v", current.name, err)
		g.statusMessage = fmt.Sprintf("Error: %v", err)
		return
	}
	g.particleSystem.SpawnEmitter(current.cfg, pipeline, x, y)
	g.statusMessage = fmt.Sprintf("Spawned: %s", current.name)
}

func (g *ParticleViewerGame) switchEffect(delta int) {
	g.currentIndex = (g.currentIndex + delta + len(g.effects)) % len(g.effects)
	g.updateStatusMessage()
	g.spawnCurrentEffect(screenWidth/2, screenHeight/2)
}

func (g *ParticleViewerGame) saveCurrentPreset() {
	current := g.effects[g.currentIndex]
	name := strings.TrimPrefix(current.name, presetPrefix)
	if err := g.presets.Save(name, current.cfg); err != nil {
		log.Printf("Failed to save preset %s: %v", name, err)
		g.statusMessage = fmt.Sprintf("Error: %v", err)
		return
	}
	g.statusMessage = fmt.Sprintf("Saved preset: %s", name)
}

// updateStatusMessage updates the status message when switching effects
func (g *ParticleViewerGame) updateStatusMessage() {
	current := g.effects[g.currentIndex]
	g.statusMessage = fmt.Sprintf("Selected: %s", current.name)
	log.Printf("Current effect: %s (%d/%d)", current.name, g.currentIndex+1, len(g.effects))
}

// preloadGroups loads the listed resource groups up front so the first
// spawn does not hitch. A missing group is only logged.
func preloadGroups(rm *game.ResourceManager, groups string) {
	for _, group := range strings.Split(groups, ",") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		if err := rm.LoadResourceGroup(group); err != nil {
			log.Printf("Warning: failed to preload resource group %s: %v", group, err)
			continue
		}
		log.Printf("Preloaded resource group: %s", group)
	}
}

func main() {
	flag.Parse()

	log.Println("=== Particle Effect Viewer ===")
	log.Printf("Emitters: %s", *emittersFlag)
	log.Printf("Resources: %s", *resourcesFlag)

	viewer, err := NewParticleViewerGame()
	if err != nil {
		log.Fatal("Failed to initialize viewer:", err)
	}

	// 默认静音运行；如需详细调试，传入 --verbose
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Particle Effect Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
