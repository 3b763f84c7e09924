package webhook

// HandleEventResponse Webhookイベント処理の結果
//
// Receivedは署名検証を通過したことを示す。再送されたイベントは
// Duplicateがtrueになり、台帳は変異されない。
type HandleEventResponse struct {
	Received    bool
	Applied     bool
	Duplicate   bool
	DonationDue bool
}
