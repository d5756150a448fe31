package mail

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/tuumbleweed/xerr"
)

/*
sendSES delivers one message through Amazon SES v2, reusing the same raw
MIME form as the Gmail path. AWS credentials and region come from the
standard environment/config chain.
*/
func sendSES(ctx context.Context, from string, msg Message) (e *xerr.Error) {
	awsCfg, loadErr := awsconfig.LoadDefaultConfig(ctx)
	if loadErr != nil {
		e = xerr.NewError(loadErr, "load AWS configuration", nil)
		return e
	}

	raw, e := buildMIME(from, msg)
	if e != nil {
		return e
	}

	client := sesv2.NewFromConfig(awsCfg)
	_, sendErr := client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content:          &types.EmailContent{Raw: &types.RawMessage{Data: raw}},
	})
	if sendErr != nil {
		e = xerr.NewError(sendErr, "send mail via SES", msg.To)
		return e
	}
	return e
}
