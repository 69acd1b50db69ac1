package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/starblaster/pkg/app"
	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/embedded"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
	level   = flag.String("level", "", "启动关卡 ID，为空时从第一个未通关的关卡开始")
	seed    = flag.Int64("seed", 0, "随机种子，0 表示使用当前时间")
	mute    = flag.Bool("mute", false, "关闭提示音")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	sandbox, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Level:   *level,
		Seed:    *seed,
		Mute:    *mute,
	})
	if err != nil {
		log.Fatalf("沙盒初始化失败: %v", err)
	}

	ebiten.SetWindowSize(int(config.ScreenWidth), int(config.ScreenHeight))
	ebiten.SetWindowTitle("Starblaster - Wave Sandbox")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Start the game loop
	if err := ebiten.RunGame(sandbox); err != nil {
		log.Fatal(err)
	}

	// 关闭窗口时保存进度
	if err := sandbox.Progress().Save(); err != nil {
		log.Printf("Failed to save progress on exit: %v", err)
	}
}
