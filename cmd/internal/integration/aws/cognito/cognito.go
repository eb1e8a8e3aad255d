package cognitoclient

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// CognitoInterface is the slice of the identity provider this application
// consumes: credential lookup, password sign-in, sign-up with profile
// metadata, global sign-out, and the admin delete used to revert a partial
// signup.
type CognitoInterface interface {
	SignUp(ctx context.Context, user *User) (string, error)
	ConfirmAccount(ctx context.Context, confirmation *UserConfirmation) error
	SignIn(ctx context.Context, login *UserLogin) (*AuthCreate, error)
	CurrentUser(ctx context.Context, accessToken string) (*Identity, error)
	GlobalSignOut(ctx context.Context, accessToken string) error
	AdminDeleteUser(ctx context.Context, email string) error
}

// User is a signup request. Metadata carries initial profile fields
// (full_name, role, avatar_url) as custom user attributes.
type User struct {
	Email    string
	Password string
	Metadata map[string]string
}

type UserLogin struct {
	Email    string
	Password string
}

type UserConfirmation struct {
	Email string
	Code  string
}

// AuthCreate is the credential bundle returned by a successful sign-in.
type AuthCreate struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
	ExpiresIn    int32
}

// Identity is the authenticated principal as the provider reports it.
type Identity struct {
	Sub   string
	Email string
}

type Client struct {
	api        *cognito.Client
	clientID   string
	userPoolID string
}

func InitCognitoClient() (*Client, error) {
	clientID := os.Getenv("COGNITO_CLIENT_ID")
	userPoolID := os.Getenv("COGNITO_USER_POOL_ID")
	if clientID == "" || userPoolID == "" {
		return nil, errors.New("COGNITO_CLIENT_ID and COGNITO_USER_POOL_ID must be set")
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, err
	}

	return &Client{
		api:        cognito.NewFromConfig(cfg),
		clientID:   clientID,
		userPoolID: userPoolID,
	}, nil
}

func (c *Client) SignUp(ctx context.Context, user *User) (string, error) {
	attrs := make([]types.AttributeType, 0, len(user.Metadata)+1)
	attrs = append(attrs, types.AttributeType{
		Name:  aws.String("email"),
		Value: aws.String(user.Email),
	})
	for name, value := range user.Metadata {
		attrs = append(attrs, types.AttributeType{
			Name:  aws.String("custom:" + name),
			Value: aws.String(value),
		})
	}

	out, err := c.api.SignUp(ctx, &cognito.SignUpInput{
		ClientId:       aws.String(c.clientID),
		Username:       aws.String(user.Email),
		Password:       aws.String(user.Password),
		UserAttributes: attrs,
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.UserSub), nil
}

func (c *Client) ConfirmAccount(ctx context.Context, confirmation *UserConfirmation) error {
	_, err := c.api.ConfirmSignUp(ctx, &cognito.ConfirmSignUpInput{
		ClientId:         aws.String(c.clientID),
		Username:         aws.String(confirmation.Email),
		ConfirmationCode: aws.String(confirmation.Code),
	})
	return err
}

func (c *Client) SignIn(ctx context.Context, login *UserLogin) (*AuthCreate, error) {
	out, err := c.api.InitiateAuth(ctx, &cognito.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(c.clientID),
		AuthParameters: map[string]string{
			"USERNAME": login.Email,
			"PASSWORD": login.Password,
		},
	})
	if err != nil {
		return nil, err
	}

	result := out.AuthenticationResult
	if result == nil {
		return nil, errors.New("sign-in requires a challenge this client does not support")
	}

	return &AuthCreate{
		AccessToken:  aws.ToString(result.AccessToken),
		IDToken:      aws.ToString(result.IdToken),
		RefreshToken: aws.ToString(result.RefreshToken),
		ExpiresIn:    result.ExpiresIn,
	}, nil
}

func (c *Client) CurrentUser(ctx context.Context, accessToken string) (*Identity, error) {
	out, err := c.api.GetUser(ctx, &cognito.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return nil, err
	}

	identity := &Identity{}
	for _, attr := range out.UserAttributes {
		switch aws.ToString(attr.Name) {
		case "sub":
			identity.Sub = aws.ToString(attr.Value)
		case "email":
			identity.Email = aws.ToString(attr.Value)
		}
	}

	if identity.Sub == "" {
		return nil, errors.New("identity provider returned no subject")
	}
	return identity, nil
}

func (c *Client) GlobalSignOut(ctx context.Context, accessToken string) error {
	_, err := c.api.GlobalSignOut(ctx, &cognito.GlobalSignOutInput{
		AccessToken: aws.String(accessToken),
	})
	return err
}

func (c *Client) AdminDeleteUser(ctx context.Context, email string) error {
	_, err := c.api.AdminDeleteUser(ctx, &cognito.AdminDeleteUserInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(email),
	})
	return err
}
