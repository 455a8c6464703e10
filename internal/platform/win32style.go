package platform

const (
	wsBorder       = 0x00800000
	wsDlgFrame     = 0x00400000
	wsCaption      = wsBorder | wsDlgFrame
	wsExToolWindow = 0x00000080
)

// decodeWin32Style maps GWL_STYLE and GWL_EXSTYLE words to a WindowStyle. A
// window counts as titled when either caption bit is set.
func decodeWin32Style(style, exStyle uint32) WindowStyle {
	return WindowStyle{
		HasCaption: style&wsCaption != 0,
		ToolWindow: exStyle&wsExToolWindow != 0,
	}
}
