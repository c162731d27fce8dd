package xident

// resetGlobal 重置全局单例状态，仅供测试使用。
func resetGlobal() {
	initMu.Lock()
	defer initMu.Unlock()
	defaultGen.Store(nil)
	initCalled = false
}
