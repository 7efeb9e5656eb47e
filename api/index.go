package handler

import (
	"net/http"
	"sync"

	config "biosecure-api/configs"
	"biosecure-api/pkg/app"

	"github.com/gin-gonic/gin"
)

var (
	engine *gin.Engine
	once   sync.Once
)

// setupApp はGinアプリケーションを初期化します。
// サーバーレス環境では、リクエストごとに初期化が走らないようsync.Onceで一度だけ実行します。
// 環境変数はプラットフォーム側で設定されるため、ここでは.envを読み込みません。
func setupApp() *gin.Engine {
	once.Do(func() {
		engine = app.New(config.LoadConfig())
	})
	return engine
}

// Handler はサーバーレス関数のエントリーポイントです。
func Handler(w http.ResponseWriter, r *http.Request) {
	setupApp().ServeHTTP(w, r)
}
