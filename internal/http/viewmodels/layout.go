package viewmodels

type LayoutData struct {
	Title      string
	Toast      *ToastViewData
	ActivePath string
}

// ToastViewData is a one-shot notification carried across a redirect.
type ToastViewData struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
