package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"go.uber.org/zap"

	"github.com/jwchoi684/rg-manager/config"
	"github.com/jwchoi684/rg-manager/models"
)

// Notifier is the outbound side channel: KakaoTalk messages and email.
// Every send is best-effort; a failure is logged and dropped, it never
// retries and never touches the result of the mutation that triggered it.
type Notifier struct {
	kakao *KakaoClient
	cfg   *config.Config
}

func New(cfg *config.Config) *Notifier {
	return &Notifier{
		kakao: NewKakaoClient(cfg.KakaoAPIBase, cfg.KakaoAdminKey),
		cfg:   cfg,
	}
}

// Kakao exposes the underlying client for the OAuth login flow.
func (n *Notifier) Kakao() *KakaoClient { return n.kakao }

// AttendanceChecked fires after a bulk attendance submit. Runs in its own
// goroutine; the handler does not wait.
func (n *Notifier) AttendanceChecked(owner *models.User, className, date string, checked int) {
	if owner == nil {
		return
	}
	msg := fmt.Sprintf("[RG Manager] %s %s: %d students checked in", date, className, checked)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if owner.KakaoConsent && owner.KakaoID != "" {
			if err := n.kakao.SendMessage(ctx, owner.KakaoID, msg); err != nil {
				zap.L().Warn("kakao notify failed",
					zap.String("user", owner.Username), zap.Error(err))
			}
		}
		if owner.Email != "" && n.cfg.SMTPHost != "" {
			if err := n.sendMail(owner.Email, "Attendance recorded", msg); err != nil {
				zap.L().Warn("mail notify failed",
					zap.String("user", owner.Username), zap.Error(err))
			}
		}
	}()
}

func (n *Notifier) sendMail(to, subject, body string) error {
	addr := n.cfg.SMTPHost + ":" + n.cfg.SMTPPort
	var auth smtp.Auth
	if n.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.SMTPPass, n.cfg.SMTPHost)
	}
	from := n.cfg.MailFrom
	if from == "" {
		from = n.cfg.SMTPUser
	}
	msg := []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")
	return smtp.SendMail(addr, auth, from, []string{to}, msg)
}
